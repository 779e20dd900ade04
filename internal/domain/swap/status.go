package swap

import (
	"errors"
	"strings"
)

var (
	ErrNotFound          = errors.New("swap not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidReference  = errors.New("swap references a missing profile or skill")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var allStatuses = []Status{StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled}

// transitions lists the business transitions. Terminal states have no entry.
var transitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted: {StatusCompleted, StatusCancelled},
}

func Statuses() []Status {
	return append([]Status(nil), allStatuses...)
}

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, it := range allStatuses {
		if it == st {
			return st, true
		}
	}
	return "", false
}

func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo reports whether next is an allowed successor of s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, it := range transitions[s] {
		if it == next {
			return true
		}
	}
	return false
}
