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

var _ ports.TeamRepository = teams{}

type teams struct {
	q *sql.Tx
}

const teamColumns = `id, name, description, admin_id, created_at`

func scanTeam(row scanner) (team.Team, error) {
	var t team.Team
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.AdminID, &t.CreatedAt)
	return t, err
}

func collectTeams(rows *sql.Rows) ([]team.Team, error) {
	var out []team.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r teams) Create(ctx context.Context, t *team.Team) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO teams(id, name, description, admin_id, created_at) VALUES(?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Description, t.AdminID, t.CreatedAt.UTC())
	if err != nil {
		return translate("insert team", err, domain.ReasonDuplicateName)
	}
	return r.AddMembers(ctx, t.ID, t.MemberIDs)
}

func (r teams) Get(ctx context.Context, id string) (*team.Team, error) {
	t, err := scanTeam(r.q.QueryRowContext(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound(domain.ReasonNotFound, "team %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT user_id FROM team_members WHERE team_id = ? ORDER BY rowid ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("list team member ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, fmt.Errorf("scan member id: %w", err)
		}
		t.MemberIDs = append(t.MemberIDs, uid)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r teams) List(ctx context.Context) ([]team.Team, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+teamColumns+` FROM teams ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()
	return collectTeams(rows)
}

func (r teams) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	var exists bool
	err := r.q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM teams WHERE name = ? AND id <> ?)`, name, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("team name lookup: %w", err)
	}
	return exists, nil
}

func (r teams) Update(ctx context.Context, t *team.Team) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE teams SET name = ?, description = ?, admin_id = ? WHERE id = ?`,
		t.Name, t.Description, t.AdminID, t.ID)
	if err != nil {
		return translate("update team", err, domain.ReasonDuplicateName)
	}
	return requireAffected(res, "team", t.ID)
}

// Delete cascades explicitly from the leaves up; the ON DELETE CASCADE
// clauses of the schema are only a backstop.
func (r teams) Delete(ctx context.Context, id string) error {
	stmts := []struct {
		op    string
		query string
	}{
		{"delete team tasks", `DELETE FROM tasks WHERE board_id IN (SELECT id FROM boards WHERE team_id = ?)`},
		{"delete team boards", `DELETE FROM boards WHERE team_id = ?`},
		{"delete team members", `DELETE FROM team_members WHERE team_id = ?`},
	}
	for _, st := range stmts {
		if _, err := r.q.ExecContext(ctx, st.query, id); err != nil {
			return fmt.Errorf("%s: %w", st.op, err)
		}
	}

	res, err := r.q.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return requireAffected(res, "team", id)
}

func (r teams) Members(ctx context.Context, teamID string) ([]user.User, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT u.id, u.name, u.display_name, u.created_at
		FROM users u
		JOIN team_members m ON m.user_id = u.id
		WHERE m.team_id = ?
		ORDER BY u.name ASC`, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	var out []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r teams) AddMembers(ctx context.Context, teamID string, userIDs []string) error {
	for _, uid := range userIDs {
		_, err := r.q.ExecContext(ctx,
			`INSERT INTO team_members(team_id, user_id) VALUES(?, ?)`, teamID, uid)
		if err != nil {
			return translate("insert team member", err, domain.ReasonInvalidUserID)
		}
	}
	return nil
}

func (r teams) RemoveMembers(ctx context.Context, teamID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	marks, args := placeholders(userIDs)
	args = append([]any{teamID}, args...)
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM team_members WHERE team_id = ? AND user_id IN (`+marks+`)`, args...)
	if err != nil {
		return fmt.Errorf("delete team members: %w", err)
	}
	return nil
}
