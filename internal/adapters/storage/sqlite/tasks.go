package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jsamuelsen11/task-planner/internal/domain"
	"github.com/jsamuelsen11/task-planner/internal/domain/task"
	"github.com/jsamuelsen11/task-planner/internal/ports"
)

var _ ports.TaskRepository = tasks{}

type tasks struct {
	q *sql.Tx
}

const taskColumns = `id, board_id, user_id, title, description, status, created_at`

func scanTask(row scanner) (task.Task, error) {
	var t task.Task
	err := row.Scan(&t.ID, &t.BoardID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.CreatedAt)
	return t, err
}

func (r tasks) Create(ctx context.Context, t *task.Task) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO tasks(id, board_id, user_id, title, description, status, created_at) VALUES(?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.BoardID, t.UserID, t.Title, t.Description, string(t.Status), t.CreatedAt.UTC())
	if err != nil {
		return translate("insert task", err, domain.ReasonDuplicateTitleInBoard)
	}
	return nil
}

func (r tasks) Get(ctx context.Context, id string) (*task.Task, error) {
	t, err := scanTask(r.q.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound(domain.ReasonNotFound, "task %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

func (r tasks) ListByBoard(ctx context.Context, boardID string) ([]task.Task, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE board_id = ? ORDER BY created_at ASC, id ASC`, boardID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r tasks) ExistsByTitle(ctx context.Context, boardID, title string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tasks WHERE board_id = ? AND title = ?)`, boardID, title).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("task title lookup: %w", err)
	}
	return exists, nil
}

func (r tasks) UpdateStatus(ctx context.Context, id string, status task.Status) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE tasks SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	return requireAffected(res, "task", id)
}
