// Package export defines the read model handed to board formatters and the
// artifact they produce.
package export

import (
	"fmt"
	"strings"

	"github.com/jsamuelsen11/task-planner/internal/domain"
	"github.com/jsamuelsen11/task-planner/internal/domain/board"
	"github.com/jsamuelsen11/task-planner/internal/domain/task"
)

// Format selects the rendering of an exported board.
type Format string

const (
	FormatText     Format = "text"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// IsValid returns true if the format is one of the defined constants.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatYAML, FormatMarkdown, FormatHTML:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (f Format) String() string {
	return string(f)
}

// Extension returns the file extension, without the dot, used when the
// artifact is written to disk.
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatMarkdown:
		return "md"
	case FormatHTML:
		return "html"
	default:
		return "txt"
	}
}

// ContentType returns the media type of the rendered artifact.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// ParseFormat converts raw input into a Format, using fallback when raw is
// empty.
func ParseFormat(raw string, fallback Format) (Format, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	if !f.IsValid() {
		return "", domain.Invalid(domain.ReasonInvalidFormat, "format",
			fmt.Sprintf("invalid: %q, want one of text, yaml, markdown, html", raw))
	}
	return f, nil
}

// TaskLine is one task of a snapshot together with its assignee's name.
type TaskLine struct {
	Task     task.Task
	Assignee string
}

// Snapshot is a consistent read of a board and everything a formatter needs
// to render it.
type Snapshot struct {
	Board    board.Board
	TeamName string
	Tasks    []TaskLine
}

// Artifact is a rendered board.
type Artifact struct {
	Format      Format
	ContentType string
	Filename    string
	Content     []byte
	// Path is set when the artifact was also written to disk.
	Path string
}

var filenameReplacer = strings.NewReplacer(" ", "_", "/", "_", "\\", "_")

// Filename returns the on-disk name of an export: the board name with spaces
// and path separators replaced by underscores, the board ID, and the
// format's extension.
func Filename(b board.Board, f Format) string {
	return fmt.Sprintf("%s_%s.%s", filenameReplacer.Replace(b.Name), b.ID, f.Extension())
}
