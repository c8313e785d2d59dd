package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jsamuelsen11/task-planner/internal/domain"
	"github.com/jsamuelsen11/task-planner/internal/domain/board"
	"github.com/jsamuelsen11/task-planner/internal/ports"
)

var _ ports.BoardRepository = boards{}

type boards struct {
	q *sql.Tx
}

const boardColumns = `id, team_id, name, description, status, created_at, end_time`

func scanBoard(row scanner) (board.Board, error) {
	var (
		b   board.Board
		end sql.NullTime
	)
	if err := row.Scan(&b.ID, &b.TeamID, &b.Name, &b.Description, &b.Status, &b.CreatedAt, &end); err != nil {
		return board.Board{}, err
	}
	if end.Valid {
		t := end.Time
		b.EndTime = &t
	}
	return b, nil
}

func (r boards) Create(ctx context.Context, b *board.Board) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO boards(id, team_id, name, description, status, created_at) VALUES(?, ?, ?, ?, ?, ?)`,
		b.ID, b.TeamID, b.Name, b.Description, string(b.Status), b.CreatedAt.UTC())
	if err != nil {
		return translate("insert board", err, domain.ReasonDuplicateNameInTeam)
	}
	return nil
}

func (r boards) Get(ctx context.Context, id string) (*board.Board, error) {
	b, err := scanBoard(r.q.QueryRowContext(ctx,
		`SELECT `+boardColumns+` FROM boards WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound(domain.ReasonNotFound, "board %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	return &b, nil
}

func (r boards) ListByTeam(ctx context.Context, teamID string, filter board.Filter) ([]board.Board, error) {
	query := `SELECT ` + boardColumns + ` FROM boards WHERE team_id = ?`
	args := []any{teamID}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	var out []board.Board
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan board: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r boards) ExistsByName(ctx context.Context, teamID, name string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM boards WHERE team_id = ? AND name = ?)`, teamID, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("board name lookup: %w", err)
	}
	return exists, nil
}

func (r boards) Close(ctx context.Context, b *board.Board) error {
	var end any
	if b.EndTime != nil {
		end = b.EndTime.UTC()
	}
	res, err := r.q.ExecContext(ctx,
		`UPDATE boards SET status = ?, end_time = ? WHERE id = ?`, string(b.Status), end, b.ID)
	if err != nil {
		return fmt.Errorf("close board: %w", err)
	}
	return requireAffected(res, "board", b.ID)
}
