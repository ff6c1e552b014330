package errors

import "net/http"

var ErrJobFinalized = &Exception{
	Message:    "job is already finalized",
	StatusCode: http.StatusConflict,
}
