package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen11/task-planner/internal/app/validation"
	"github.com/jsamuelsen11/task-planner/internal/domain"
	"github.com/jsamuelsen11/task-planner/internal/domain/board"
	"github.com/jsamuelsen11/task-planner/internal/domain/task"
	"github.com/jsamuelsen11/task-planner/internal/ports"
)

// Compile-time check that BoardService implements ports.BoardService.
var _ ports.BoardService = (*BoardService)(nil)

// BoardService implements ports.BoardService.
type BoardService struct {
	base
}

// NewBoardService creates a BoardService over the given store.
func NewBoardService(store ports.Store, logger *slog.Logger, opts ...Option) *BoardService {
	return &BoardService{base: newBase(store, logger, opts)}
}

// CreateBoard validates and stores a new OPEN board.
func (s *BoardService) CreateBoard(ctx context.Context, b *board.Board) (*board.Board, error) {
	s.logger.InfoContext(ctx, "creating board",
		slog.String("name", b.Name),
		slog.String("team_id", b.TeamID),
	)

	err := s.store.Update(ctx, func(tx ports.Tx) error {
		if err := validation.New(tx).NewBoard(ctx, b); err != nil {
			return err
		}
		b.ID = s.newID()
		b.Status = board.StatusOpen
		b.CreatedAt = s.now()
		b.EndTime = nil
		return tx.Boards().Create(ctx, b)
	})
	if err != nil {
		return nil, s.fail(ctx, "create_board", err, slog.String("team_id", b.TeamID))
	}
	return b, nil
}

// CloseBoard closes a board whose tasks are all COMPLETE. The tasks are read
// in the same transaction as the close write.
func (s *BoardService) CloseBoard(ctx context.Context, id string) (*board.Board, error) {
	s.logger.InfoContext(ctx, "closing board", slog.String("id", id))

	var closed *board.Board
	err := s.store.Update(ctx, func(tx ports.Tx) error {
		b, err := tx.Boards().Get(ctx, id)
		if err != nil {
			return err
		}
		tasks, err := tx.Tasks().ListByBoard(ctx, id)
		if err != nil {
			return err
		}
		if err := b.Close(tasks, s.now()); err != nil {
			return err
		}
		closed = b
		return tx.Boards().Close(ctx, b)
	})
	if err != nil {
		return nil, s.fail(ctx, "close_board", err, slog.String("id", id))
	}
	return closed, nil
}

// GetBoard returns a board with its tasks.
func (s *BoardService) GetBoard(ctx context.Context, id string) (*ports.BoardView, error) {
	var view ports.BoardView
	err := s.store.View(ctx, func(tx ports.Tx) error {
		b, err := tx.Boards().Get(ctx, id)
		if err != nil {
			return err
		}
		tasks, err := tx.Tasks().ListByBoard(ctx, id)
		if err != nil {
			return err
		}
		view = ports.BoardView{Board: *b, Tasks: tasks}
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "describe_board", err, slog.String("id", id))
	}
	return &view, nil
}

// ListBoards returns the boards of a team matching filter.
func (s *BoardService) ListBoards(ctx context.Context, teamID string, filter board.Filter) ([]board.Board, error) {
	var list []board.Board
	err := s.store.View(ctx, func(tx ports.Tx) error {
		if _, err := tx.Teams().Get(ctx, teamID); err != nil {
			return domain.Retag(err, domain.ReasonTeamNotFound)
		}
		var err error
		list, err = tx.Boards().ListByTeam(ctx, teamID, filter)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "list_boards_for_team", err, slog.String("team_id", teamID))
	}
	return list, nil
}

// ListTasks returns the tasks of a board.
func (s *BoardService) ListTasks(ctx context.Context, boardID string) ([]task.Task, error) {
	var list []task.Task
	err := s.store.View(ctx, func(tx ports.Tx) error {
		if _, err := tx.Boards().Get(ctx, boardID); err != nil {
			return err
		}
		var err error
		list, err = tx.Tasks().ListByBoard(ctx, boardID)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "list_board_tasks", err, slog.String("board_id", boardID))
	}
	return list, nil
}
