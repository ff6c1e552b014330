package errors

import "net/http"

var ErrNotJobOwner = &Exception{
	Message:    "caller is not the job's employer",
	StatusCode: http.StatusForbidden,
}
