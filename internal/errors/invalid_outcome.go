package errors

import "net/http"

var ErrInvalidOutcome = &Exception{
	Message:    "outcome must be completed or cancelled",
	StatusCode: http.StatusBadRequest,
}
