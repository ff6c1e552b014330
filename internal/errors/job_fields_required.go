package errors

import "net/http"

var ErrJobFieldsRequired = &Exception{
	Message:    "title and description are required",
	StatusCode: http.StatusBadRequest,
}
