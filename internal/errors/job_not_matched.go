package errors

import "net/http"

var ErrJobNotMatched = &Exception{
	Message:    "job is not matched",
	StatusCode: http.StatusConflict,
}
