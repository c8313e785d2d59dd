package task

import (
	"fmt"
	"strings"

	"github.com/jsamuelsen11/task-planner/internal/domain"
)

// Status represents the progress state of a Task.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusComplete   Status = "COMPLETE"
)

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusComplete:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts raw input into a Status. Matching is exact after
// trimming; anything else is a validation failure with ReasonInvalidStatus.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	if !s.IsValid() {
		return "", domain.Invalid(domain.ReasonInvalidStatus, "status",
			fmt.Sprintf("invalid: %q, want one of OPEN, IN_PROGRESS, COMPLETE", raw))
	}
	return s, nil
}
