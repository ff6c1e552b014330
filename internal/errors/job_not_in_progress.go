package errors

import "net/http"

var ErrJobNotInProgress = &Exception{
	Message:    "job is not in progress",
	StatusCode: http.StatusConflict,
}
