package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen11/task-planner/internal/app/validation"
	"github.com/jsamuelsen11/task-planner/internal/domain/team"
	"github.com/jsamuelsen11/task-planner/internal/domain/user"
	"github.com/jsamuelsen11/task-planner/internal/ports"
)

// Compile-time check that UserService implements ports.UserService.
var _ ports.UserService = (*UserService)(nil)

// UserService implements ports.UserService.
type UserService struct {
	base
}

// NewUserService creates a UserService over the given store.
func NewUserService(store ports.Store, logger *slog.Logger, opts ...Option) *UserService {
	return &UserService{base: newBase(store, logger, opts)}
}

// CreateUser validates and stores a new user.
func (s *UserService) CreateUser(ctx context.Context, u *user.User) (*user.User, error) {
	s.logger.InfoContext(ctx, "creating user", slog.String("name", u.Name))

	err := s.store.Update(ctx, func(tx ports.Tx) error {
		if err := validation.New(tx).NewUser(ctx, u); err != nil {
			return err
		}
		u.ID = s.newID()
		u.CreatedAt = s.now()
		return tx.Users().Create(ctx, u)
	})
	if err != nil {
		return nil, s.fail(ctx, "create_user", err, slog.String("name", u.Name))
	}
	return u, nil
}

// UpdateUser changes a user's display name.
func (s *UserService) UpdateUser(ctx context.Context, id string, upd user.Update) (*user.User, error) {
	s.logger.InfoContext(ctx, "updating user", slog.String("id", id))

	var updated *user.User
	err := s.store.Update(ctx, func(tx ports.Tx) error {
		u, err := validation.New(tx).UserUpdate(ctx, id, upd)
		if err != nil {
			return err
		}
		updated = u
		return tx.Users().UpdateDisplayName(ctx, u.ID, u.DisplayName)
	})
	if err != nil {
		return nil, s.fail(ctx, "update_user", err, slog.String("id", id))
	}
	return updated, nil
}

// GetUser returns a single user.
func (s *UserService) GetUser(ctx context.Context, id string) (*user.User, error) {
	var u *user.User
	err := s.store.View(ctx, func(tx ports.Tx) error {
		var err error
		u, err = tx.Users().Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "describe_user", err, slog.String("id", id))
	}
	return u, nil
}

// ListUsers returns all users.
func (s *UserService) ListUsers(ctx context.Context) ([]user.User, error) {
	var list []user.User
	err := s.store.View(ctx, func(tx ports.Tx) error {
		var err error
		list, err = tx.Users().List(ctx)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "list_users", err)
	}
	return list, nil
}

// ListUserTeams returns the teams a user belongs to.
func (s *UserService) ListUserTeams(ctx context.Context, id string) ([]team.Team, error) {
	var teams []team.Team
	err := s.store.View(ctx, func(tx ports.Tx) error {
		if _, err := tx.Users().Get(ctx, id); err != nil {
			return err
		}
		var err error
		teams, err = tx.Users().Teams(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "list_user_teams", err, slog.String("id", id))
	}
	return teams, nil
}
