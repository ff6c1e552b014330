package events

import "encoding/json"

type Type string

const (
	JobOpened                Type = "job_opened"
	ApplicationSubmitted     Type = "application_submitted"
	ApplicationAccepted      Type = "application_accepted"
	ApplicationsAutoRejected Type = "applications_auto_rejected"
	JobStarted               Type = "job_started"
	JobCompleted             Type = "job_completed"
	JobCancelled             Type = "job_cancelled"
)

// Event is the payload the lifecycle service pushes onto the dispatch
// queue after a successful transition. Recipient fields are filled per
// type: WorkerID is the applying/accepted worker, RejectedWorkerIDs the
// siblings auto-rejected by an acceptance.
type Event struct {
	Type              Type     `json:"type"`
	JobID             string   `json:"job_id"`
	JobTitle          string   `json:"job_title,omitempty"`
	EmployerID        string   `json:"employer_id,omitempty"`
	WorkerID          string   `json:"worker_id,omitempty"`
	RejectedWorkerIDs []string `json:"rejected_worker_ids,omitempty"`
}

func Encode(e Event) (string, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func Decode(payload string) (Event, error) {
	var e Event
	err := json.Unmarshal([]byte(payload), &e)
	return e, err
}
