package errors

import "net/http"

var ErrAlreadyRated = &Exception{
	Message:    "rating for this job already submitted",
	StatusCode: http.StatusConflict,
}
