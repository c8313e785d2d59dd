package render

import (
	"fmt"
	"time"

	"github.com/jsamuelsen11/task-planner/internal/domain/export"
)

// ToRequest converts a snapshot into a render request for format.
func ToRequest(snap *export.Snapshot, format export.Format) RequestDTO {
	b := snap.Board
	board := BoardDTO{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Status:      b.Status.String(),
		Team:        snap.TeamName,
		CreatedAt:   b.CreatedAt.UTC().Format(time.RFC3339),
		Tasks:       make([]TaskDTO, len(snap.Tasks)),
	}
	if b.EndTime != nil {
		board.EndTime = b.EndTime.UTC().Format(time.RFC3339)
	}

	for i, line := range snap.Tasks {
		board.Tasks[i] = TaskDTO{
			ID:          line.Task.ID,
			Title:       line.Task.Title,
			Description: line.Task.Description,
			Status:      line.Task.Status.String(),
			Assignee:    line.Assignee,
			CreatedAt:   line.Task.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	return RequestDTO{Format: format.String(), Board: board}
}

// FromResponse extracts the rendered content, checking the service rendered
// the format that was asked for.
func FromResponse(dto ResponseDTO, want export.Format) ([]byte, error) {
	if dto.Format != want.String() {
		return nil, fmt.Errorf("formatter returned format %q, want %q", dto.Format, want)
	}
	return []byte(dto.Content), nil
}
