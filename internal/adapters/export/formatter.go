// Package export renders board snapshots in process. It is the default
// ports.BoardFormatter; the remote formatting service client in
// adapters/clients/acl is the alternative.
package export

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen11/task-planner/internal/domain/export"
	"github.com/jsamuelsen11/task-planner/internal/ports"
)

// Compile-time interface check.
var _ ports.BoardFormatter = (*Formatter)(nil)

// timeLayout is used for every timestamp in text and markdown output.
const timeLayout = time.RFC3339

// Formatter renders snapshots as text, YAML, Markdown or HTML. HTML is the
// Markdown rendering converted by goldmark; raw HTML in board or task fields
// is not passed through.
type Formatter struct {
	md goldmark.Markdown
}

// NewFormatter creates a Formatter.
func NewFormatter() *Formatter {
	return &Formatter{
		md: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Format renders snap in the given format.
func (f *Formatter) Format(_ context.Context, snap *export.Snapshot, format export.Format) ([]byte, error) {
	switch format {
	case export.FormatText:
		return renderText(snap), nil
	case export.FormatYAML:
		return renderYAML(snap)
	case export.FormatMarkdown:
		return renderMarkdown(snap), nil
	case export.FormatHTML:
		return f.renderHTML(snap)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// renderText writes the plain report: a header block, a blank line, then one
// line per task.
func renderText(snap *export.Snapshot) []byte {
	b := snap.Board

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Board: %s\n", b.Name)
	fmt.Fprintf(&buf, "Description: %s\n", b.Description)
	fmt.Fprintf(&buf, "Status: %s\n", b.Status)
	fmt.Fprintf(&buf, "Created: %s\n", b.CreatedAt.UTC().Format(timeLayout))
	fmt.Fprintf(&buf, "Ended: %s\n\n", endTime(b.EndTime))

	buf.WriteString("Tasks:\n")
	for _, line := range snap.Tasks {
		fmt.Fprintf(&buf, "- [%s] %s (Assigned to: %s)\n", line.Task.Status, line.Task.Title, line.Assignee)
	}
	return buf.Bytes()
}

type yamlDoc struct {
	Board yamlBoard `yaml:"board"`
}

type yamlBoard struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Team        string     `yaml:"team"`
	Status      string     `yaml:"status"`
	CreatedAt   time.Time  `yaml:"created_at"`
	EndTime     *time.Time `yaml:"end_time"`
	Tasks       []yamlTask `yaml:"tasks"`
}

type yamlTask struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Status      string    `yaml:"status"`
	Assignee    string    `yaml:"assignee"`
	CreatedAt   time.Time `yaml:"created_at"`
}

func renderYAML(snap *export.Snapshot) ([]byte, error) {
	b := snap.Board
	doc := yamlDoc{Board: yamlBoard{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Team:        snap.TeamName,
		Status:      b.Status.String(),
		CreatedAt:   b.CreatedAt.UTC(),
		Tasks:       make([]yamlTask, len(snap.Tasks)),
	}}
	if b.EndTime != nil {
		end := b.EndTime.UTC()
		doc.Board.EndTime = &end
	}
	for i, line := range snap.Tasks {
		doc.Board.Tasks[i] = yamlTask{
			ID:          line.Task.ID,
			Title:       line.Task.Title,
			Description: line.Task.Description,
			Status:      line.Task.Status.String(),
			Assignee:    line.Assignee,
			CreatedAt:   line.Task.CreatedAt.UTC(),
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding yaml export: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml export: %w", err)
	}
	return buf.Bytes(), nil
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ", "\r", " ")

func renderMarkdown(snap *export.Snapshot) []byte {
	b := snap.Board

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", b.Name)
	fmt.Fprintf(&buf, "%s\n\n", b.Description)
	fmt.Fprintf(&buf, "- **Team:** %s\n", snap.TeamName)
	fmt.Fprintf(&buf, "- **Status:** %s\n", b.Status)
	fmt.Fprintf(&buf, "- **Created:** %s\n", b.CreatedAt.UTC().Format(timeLayout))
	fmt.Fprintf(&buf, "- **Ended:** %s\n\n", endTime(b.EndTime))

	buf.WriteString("## Tasks\n\n")
	if len(snap.Tasks) == 0 {
		buf.WriteString("_No tasks._\n")
		return buf.Bytes()
	}

	buf.WriteString("| Status | Title | Assigned to | Description |\n")
	buf.WriteString("| --- | --- | --- | --- |\n")
	for _, line := range snap.Tasks {
		fmt.Fprintf(&buf, "| %s | %s | %s | %s |\n",
			line.Task.Status,
			cellEscaper.Replace(line.Task.Title),
			cellEscaper.Replace(line.Assignee),
			cellEscaper.Replace(line.Task.Description),
		)
	}
	return buf.Bytes()
}

func (f *Formatter) renderHTML(snap *export.Snapshot) ([]byte, error) {
	var body bytes.Buffer
	if err := f.md.Convert(renderMarkdown(snap), &body); err != nil {
		return nil, fmt.Errorf("converting export to html: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(snap.Board.Name))
	buf.WriteString("</head>\n<body>\n")
	buf.Write(body.Bytes())
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

func endTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(timeLayout)
}
