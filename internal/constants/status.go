package constants

// JobStatus is the closed set of states a job posting moves through.
// Transitions are owned by the lifecycle service; nothing else writes it.
type JobStatus string

const (
	JobOpen       JobStatus = "open"
	JobMatched    JobStatus = "matched"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCancelled  JobStatus = "cancelled"
)

// Terminal reports whether no further transition is accepted from s.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobCompleted, JobCancelled:
		return true
	case JobOpen, JobMatched, JobInProgress:
		return false
	}
	return false
}

type ApplicationStatus string

const (
	ApplicationApplied  ApplicationStatus = "applied"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Decided reports whether the application has been accepted or rejected
// and is therefore immutable.
func (s ApplicationStatus) Decided() bool {
	switch s {
	case ApplicationAccepted, ApplicationRejected:
		return true
	case ApplicationApplied:
		return false
	}
	return false
}

type UserRole string

const (
	RoleWorker   UserRole = "worker"
	RoleEmployer UserRole = "employer"
)

// SystemActorID is the actor recorded for transitions the scheduler
// performs on its own, such as the guarantee-window auto-completion.
const SystemActorID = "system"
