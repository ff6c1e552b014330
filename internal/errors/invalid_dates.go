package errors

import "net/http"

var ErrInvalidDates = &Exception{
	Message:    "start date must be before end date",
	StatusCode: http.StatusBadRequest,
}
