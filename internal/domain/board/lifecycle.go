package board

import (
	"time"

	"github.com/jsamuelsen11/task-planner/internal/domain"
	"github.com/jsamuelsen11/task-planner/internal/domain/task"
)

// EnsureOpen rejects any mutation of a closed board or of its tasks.
func (b *Board) EnsureOpen() error {
	if b.IsOpen() {
		return nil
	}
	return domain.PreconditionFailed(domain.ReasonBoardClosed, "board %s is closed", b.ID)
}

// Close moves the board to CLOSED and stamps EndTime with now. Every task of
// the board must be COMPLETE; the caller passes the tasks read in the same
// transaction that persists the close.
func (b *Board) Close(tasks []task.Task, now time.Time) error {
	if err := b.EnsureOpen(); err != nil {
		return err
	}
	if pending := task.Incomplete(tasks); len(pending) > 0 {
		return domain.PreconditionFailed(domain.ReasonIncompleteTasks,
			"board %s has %d incomplete task(s)", b.ID, len(pending))
	}

	end := now.UTC()
	b.Status = StatusClosed
	b.EndTime = &end
	return nil
}
