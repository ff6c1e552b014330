package errors

import "net/http"

var ErrRoleNotAllowed = &Exception{
	Message:    "role not allowed for this action",
	StatusCode: http.StatusForbidden,
}
