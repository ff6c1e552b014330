package errors

import "net/http"

var ErrNotJobParticipant = &Exception{
	Message:    "rater and ratee must be the job's participants",
	StatusCode: http.StatusConflict,
}
