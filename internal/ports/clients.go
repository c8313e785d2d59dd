package ports

import (
	"context"

	"github.com/jsamuelsen11/task-planner/internal/domain/export"
)

// BoardFormatter renders a board snapshot into the requested format.
// Implemented by the local export adapter and by the ACL client of the
// remote formatting service; called by the export service.
type BoardFormatter interface {
	// Format returns the rendered artifact content.
	// Returns domain.ErrValidation for unsupported formats and
	// domain.ErrUnavailable when a remote formatter cannot be reached.
	Format(ctx context.Context, snapshot *export.Snapshot, format export.Format) ([]byte, error)
}
