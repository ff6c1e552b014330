package errors

import "net/http"

var ErrNotNotificationOwner = &Exception{
	Message:    "notification belongs to another user",
	StatusCode: http.StatusForbidden,
}
