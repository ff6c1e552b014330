package errors

import "net/http"

var ErrSkillAlreadyAdded = &Exception{
	Message:    "skill already added to profile",
	StatusCode: http.StatusConflict,
}
