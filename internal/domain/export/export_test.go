package export

import (
	"testing"

	"github.com/jsamuelsen11/task-planner/internal/domain"
	"github.com/jsamuelsen11/task-planner/internal/domain/board"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    Format
		wantErr bool
	}{
		{raw: "", want: FormatText},
		{raw: "yaml", want: FormatYAML},
		{raw: "Markdown", want: FormatMarkdown},
		{raw: "html", want: FormatHTML},
		{raw: "pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFormat(tt.raw, FormatText)
			if tt.wantErr {
				if domain.ReasonOf(err) != domain.ReasonInvalidFormat {
					t.Errorf("ParseFormat(%q) = %v, want invalid_format", tt.raw, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.raw, got, err, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	t.Parallel()

	b := board.Board{ID: "abc", Name: "Sprint 1/alpha"}

	tests := []struct {
		format Format
		want   string
	}{
		{FormatText, "Sprint_1_alpha_abc.txt"},
		{FormatYAML, "Sprint_1_alpha_abc.yaml"},
		{FormatMarkdown, "Sprint_1_alpha_abc.md"},
		{FormatHTML, "Sprint_1_alpha_abc.html"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			t.Parallel()
			if got := Filename(b, tt.format); got != tt.want {
				t.Errorf("Filename() = %q, want %q", got, tt.want)
			}
		})
	}
}
