package errors

import "net/http"

var ErrNotProfileOwner = &Exception{
	Message:    "profile belongs to another user",
	StatusCode: http.StatusForbidden,
}
