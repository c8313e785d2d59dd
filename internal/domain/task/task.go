// Package task defines the Task entity, its status values, and its field rules.
package task

import (
	"time"

	"github.com/jsamuelsen11/task-planner/internal/domain"
)

// Task is a unit of work on a board, assigned to one user. Title is unique
// within its board.
type Task struct {
	ID          string
	Title       string
	Description string
	BoardID     string
	UserID      string
	Status      Status
	CreatedAt   time.Time
}

// Validate checks the creation rules for a Task.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (t *Task) Validate() error {
	var check domain.FieldCheck

	check.Required("title", t.Title)
	check.Required("description", t.Description)
	check.Required("board_id", t.BoardID)
	check.Required("user_id", t.UserID)
	check.MaxLength("title", t.Title, domain.MaxNameLength)
	check.MaxLength("description", t.Description, domain.MaxDescriptionLength)

	return check.Err()
}

// IsComplete reports whether the task has reached COMPLETE.
func (t *Task) IsComplete() bool {
	return t.Status == StatusComplete
}

// Incomplete returns the tasks whose status is not COMPLETE.
func Incomplete(tasks []Task) []Task {
	var out []Task
	for i := range tasks {
		if !tasks[i].IsComplete() {
			out = append(out, tasks[i])
		}
	}
	return out
}
