package errors

import "net/http"

var ErrAlreadyApplied = &Exception{
	Message:    "already applied to this job",
	StatusCode: http.StatusConflict,
}
