package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	appctx "github.com/jsamuelsen11/task-planner/internal/app/context"
	"github.com/jsamuelsen11/task-planner/internal/domain"
	"github.com/jsamuelsen11/task-planner/internal/domain/export"
	"github.com/jsamuelsen11/task-planner/internal/ports"
)

// Compile-time check that ExportService implements ports.ExportService.
var _ ports.ExportService = (*ExportService)(nil)

// ExportService implements ports.ExportService.
type ExportService struct {
	base
	formatter ports.BoardFormatter
	outputDir string
}

// NewExportService creates an ExportService. When outputDir is empty
// artifacts are only returned, never written.
func NewExportService(
	store ports.Store,
	formatter ports.BoardFormatter,
	outputDir string,
	logger *slog.Logger,
	opts ...Option,
) *ExportService {
	return &ExportService{
		base:      newBase(store, logger, opts),
		formatter: formatter,
		outputDir: outputDir,
	}
}

// ExportBoard renders a board snapshot. The snapshot is read in one
// transaction; rendering happens after it ends since the formatter may be a
// remote call.
func (s *ExportService) ExportBoard(ctx context.Context, boardID string, format export.Format) (*export.Artifact, error) {
	s.logger.InfoContext(ctx, "exporting board",
		slog.String("board_id", boardID),
		slog.String("format", format.String()),
	)

	if !format.IsValid() {
		err := domain.Invalid(domain.ReasonInvalidFormat, "format", fmt.Sprintf("invalid: %q", format))
		return nil, s.fail(ctx, "export_board", err, slog.String("board_id", boardID))
	}

	snap, err := s.snapshot(ctx, boardID)
	if err != nil {
		return nil, s.fail(ctx, "export_board", err, slog.String("board_id", boardID))
	}

	content, err := s.formatter.Format(ctx, snap, format)
	if err != nil {
		return nil, s.fail(ctx, "export_board", fmt.Errorf("rendering board: %w", err),
			slog.String("board_id", boardID))
	}

	artifact := &export.Artifact{
		Format:      format,
		ContentType: format.ContentType(),
		Filename:    export.Filename(snap.Board, format),
		Content:     content,
	}

	if s.outputDir != "" {
		path, err := s.write(artifact)
		if err != nil {
			return nil, s.fail(ctx, "export_board", err, slog.String("board_id", boardID))
		}
		artifact.Path = path
		s.logger.InfoContext(ctx, "board exported",
			slog.String("board_id", boardID),
			slog.String("path", path),
		)
	}

	return artifact, nil
}

func (s *ExportService) snapshot(ctx context.Context, boardID string) (*export.Snapshot, error) {
	var snap export.Snapshot
	err := s.store.View(ctx, func(tx ports.Tx) error {
		b, err := tx.Boards().Get(ctx, boardID)
		if err != nil {
			return err
		}
		t, err := tx.Teams().Get(ctx, b.TeamID)
		if err != nil {
			return fmt.Errorf("loading team of board %s: %w", boardID, err)
		}
		tasks, err := tx.Tasks().ListByBoard(ctx, boardID)
		if err != nil {
			return err
		}

		// Assignees repeat across tasks; each is fetched once.
		users := appctx.NewDataProvider("user", tx.Users().Get)
		rc := appctx.FromContext(ctx)

		snap = export.Snapshot{Board: *b, TeamName: t.Name, Tasks: make([]export.TaskLine, 0, len(tasks))}
		for _, k := range tasks {
			u, err := users.Get(rc, k.UserID)
			if err != nil {
				return fmt.Errorf("loading assignee of task %s: %w", k.ID, err)
			}
			snap.Tasks = append(snap.Tasks, export.TaskLine{Task: k, Assignee: u.Name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *ExportService) write(a *export.Artifact) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o750); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(s.outputDir, a.Filename)
	if err := os.WriteFile(path, a.Content, 0o600); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}
