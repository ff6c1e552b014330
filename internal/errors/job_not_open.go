package errors

import "net/http"

var ErrJobNotOpen = &Exception{
	Message:    "job is not open",
	StatusCode: http.StatusConflict,
}
