package errors

import "net/http"

var ErrApplicationNotPending = &Exception{
	Message:    "application is not in applied state",
	StatusCode: http.StatusConflict,
}
