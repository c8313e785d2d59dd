package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jsamuelsen11/task-planner/internal/domain"
	"github.com/jsamuelsen11/task-planner/internal/domain/team"
	"github.com/jsamuelsen11/task-planner/internal/domain/user"
	"github.com/jsamuelsen11/task-planner/internal/ports"
)

var _ ports.UserRepository = users{}

type users struct {
	q *sql.Tx
}

const userColumns = `id, name, display_name, created_at`

func scanUser(row scanner) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Name, &u.DisplayName, &u.CreatedAt)
	return u, err
}

func (r users) Create(ctx context.Context, u *user.User) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users(id, name, display_name, created_at) VALUES(?, ?, ?, ?)`,
		u.ID, u.Name, u.DisplayName, u.CreatedAt.UTC())
	if err != nil {
		return translate("insert user", err, domain.ReasonDuplicateName)
	}
	return nil
}

func (r users) Get(ctx context.Context, id string) (*user.User, error) {
	u, err := scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound(domain.ReasonNotFound, "user %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r users) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r users) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE name = ?)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("user name lookup: %w", err)
	}
	return exists, nil
}

func (r users) UpdateDisplayName(ctx context.Context, id, displayName string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET display_name = ? WHERE id = ?`, displayName, id)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return requireAffected(res, "user", id)
}

func (r users) Missing(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	marks, args := placeholders(ids)
	rows, err := r.q.QueryContext(ctx, `SELECT id FROM users WHERE id IN (`+marks+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	defer rows.Close()

	found := make(map[string]struct{}, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		found[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var missing []string
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (r users) Teams(ctx context.Context, userID string) ([]team.Team, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT t.id, t.name, t.description, t.admin_id, t.created_at
		FROM teams t
		JOIN team_members m ON m.team_id = t.id
		WHERE m.user_id = ?
		ORDER BY t.created_at ASC, t.id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user teams: %w", err)
	}
	defer rows.Close()
	return collectTeams(rows)
}
