package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/task-planner/internal/adapters/http/dto"
	"github.com/jsamuelsen11/task-planner/internal/domain/export"
	"github.com/jsamuelsen11/task-planner/internal/ports"
)

// ExportHandler handles board export requests.
type ExportHandler struct {
	svc           ports.ExportService
	defaultFormat export.Format
}

// NewExportHandler creates a new ExportHandler. defaultFormat is used when a
// request names no format.
func NewExportHandler(svc ports.ExportService, defaultFormat export.Format) *ExportHandler {
	if !defaultFormat.IsValid() {
		defaultFormat = export.FormatText
	}
	return &ExportHandler{svc: svc, defaultFormat: defaultFormat}
}

// ExportBoard handles GET /api/v1/boards/{id}/export?format=.
// With ?raw=true the rendered content is written as-is with its media type
// instead of being wrapped in JSON.
func (h *ExportHandler) ExportBoard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	format, err := export.ParseFormat(r.URL.Query().Get("format"), h.defaultFormat)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	artifact, err := h.svc.ExportBoard(r.Context(), id, format)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if r.URL.Query().Get("raw") == "true" {
		w.Header().Set("Content-Type", artifact.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(artifact.Content)
		return
	}

	respond(w, r, http.StatusOK, dto.ToExportResponse(artifact))
}
