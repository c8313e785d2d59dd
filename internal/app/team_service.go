package app

import (
	"context"
	"log/slog"
	"slices"

	"github.com/jsamuelsen11/task-planner/internal/app/validation"
	"github.com/jsamuelsen11/task-planner/internal/domain/team"
	"github.com/jsamuelsen11/task-planner/internal/domain/user"
	"github.com/jsamuelsen11/task-planner/internal/ports"
)

// Compile-time check that TeamService implements ports.TeamService.
var _ ports.TeamService = (*TeamService)(nil)

// TeamService implements ports.TeamService.
type TeamService struct {
	base
}

// NewTeamService creates a TeamService over the given store.
func NewTeamService(store ports.Store, logger *slog.Logger, opts ...Option) *TeamService {
	return &TeamService{base: newBase(store, logger, opts)}
}

// CreateTeam validates and stores a new team with its admin as first member.
func (s *TeamService) CreateTeam(ctx context.Context, t *team.Team) (*team.Team, error) {
	s.logger.InfoContext(ctx, "creating team",
		slog.String("name", t.Name),
		slog.String("admin_id", t.AdminID),
	)

	err := s.store.Update(ctx, func(tx ports.Tx) error {
		if err := validation.New(tx).NewTeam(ctx, t); err != nil {
			return err
		}
		t.ID = s.newID()
		t.CreatedAt = s.now()
		return tx.Teams().Create(ctx, t)
	})
	if err != nil {
		return nil, s.fail(ctx, "create_team", err, slog.String("name", t.Name))
	}
	return t, nil
}

// UpdateTeam replaces a team's name, description and admin.
func (s *TeamService) UpdateTeam(ctx context.Context, id string, t *team.Team) (*team.Team, error) {
	s.logger.InfoContext(ctx, "updating team", slog.String("id", id))

	var updated *team.Team
	err := s.store.Update(ctx, func(tx ports.Tx) error {
		current, err := tx.Teams().Get(ctx, id)
		if err != nil {
			return err
		}

		joining, err := validation.New(tx).TeamUpdate(ctx, current, t)
		if err != nil {
			return err
		}

		next := *current
		next.Name = t.Name
		next.Description = t.Description
		next.AdminID = t.AdminID
		if err := tx.Teams().Update(ctx, &next); err != nil {
			return err
		}
		if err := tx.Teams().AddMembers(ctx, id, joining); err != nil {
			return err
		}
		next.MemberIDs = append(slices.Clone(current.MemberIDs), joining...)
		updated = &next
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "update_team", err, slog.String("id", id))
	}
	return updated, nil
}

// GetTeam returns a team with its member IDs.
func (s *TeamService) GetTeam(ctx context.Context, id string) (*team.Team, error) {
	var t *team.Team
	err := s.store.View(ctx, func(tx ports.Tx) error {
		var err error
		t, err = tx.Teams().Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "describe_team", err, slog.String("id", id))
	}
	return t, nil
}

// ListTeams returns all teams.
func (s *TeamService) ListTeams(ctx context.Context) ([]team.Team, error) {
	var list []team.Team
	err := s.store.View(ctx, func(tx ports.Tx) error {
		var err error
		list, err = tx.Teams().List(ctx)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "list_teams", err)
	}
	return list, nil
}

// DeleteTeam removes a team with its boards and their tasks.
func (s *TeamService) DeleteTeam(ctx context.Context, id string) error {
	s.logger.InfoContext(ctx, "deleting team", slog.String("id", id))

	err := s.store.Update(ctx, func(tx ports.Tx) error {
		return tx.Teams().Delete(ctx, id)
	})
	if err != nil {
		return s.fail(ctx, "delete_team", err, slog.String("id", id))
	}
	return nil
}

// ListMembers returns the users belonging to a team.
func (s *TeamService) ListMembers(ctx context.Context, id string) ([]user.User, error) {
	var members []user.User
	err := s.store.View(ctx, func(tx ports.Tx) error {
		if _, err := tx.Teams().Get(ctx, id); err != nil {
			return err
		}
		var err error
		members, err = tx.Teams().Members(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "list_team_members", err, slog.String("id", id))
	}
	return members, nil
}

// AddMembers adds users to a team, all or nothing.
func (s *TeamService) AddMembers(ctx context.Context, id string, userIDs []string) (*team.Team, error) {
	s.logger.InfoContext(ctx, "adding team members",
		slog.String("id", id),
		slog.Int("count", len(userIDs)),
	)

	var updated *team.Team
	err := s.store.Update(ctx, func(tx ports.Tx) error {
		t, joining, err := validation.New(tx).MembersToAdd(ctx, id, userIDs)
		if err != nil {
			return err
		}
		if err := tx.Teams().AddMembers(ctx, id, joining); err != nil {
			return err
		}
		t.MemberIDs = append(t.MemberIDs, joining...)
		updated = t
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "add_team_members", err, slog.String("id", id))
	}
	return updated, nil
}

// RemoveMembers removes users from a team, all or nothing.
func (s *TeamService) RemoveMembers(ctx context.Context, id string, userIDs []string) (*team.Team, error) {
	s.logger.InfoContext(ctx, "removing team members",
		slog.String("id", id),
		slog.Int("count", len(userIDs)),
	)

	var updated *team.Team
	err := s.store.Update(ctx, func(tx ports.Tx) error {
		t, leaving, err := validation.New(tx).MembersToRemove(ctx, id, userIDs)
		if err != nil {
			return err
		}
		if err := tx.Teams().RemoveMembers(ctx, id, leaving); err != nil {
			return err
		}
		t.MemberIDs = slices.DeleteFunc(t.MemberIDs, func(m string) bool {
			return slices.Contains(leaving, m)
		})
		updated = t
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "remove_team_members", err, slog.String("id", id))
	}
	return updated, nil
}
