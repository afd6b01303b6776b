package models

// Status is the shared lifecycle state for projects and tasks.
type Status string

const (
	StatusNotStarted Status = "not started"
	StatusInProgress Status = "in progress"
	StatusCompleted  Status = "completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}
