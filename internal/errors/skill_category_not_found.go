package errors

import "net/http"

var ErrSkillCategoryNotFound = &Exception{
	Message:    "skill category not found",
	StatusCode: http.StatusNotFound,
}
