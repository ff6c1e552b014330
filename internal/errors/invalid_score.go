package errors

import "net/http"

var ErrInvalidScore = &Exception{
	Message:    "score must be between 1 and 5",
	StatusCode: http.StatusBadRequest,
}
