package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/task-planner/internal/adapters/http/dto"
	"github.com/jsamuelsen11/task-planner/internal/domain/board"
	"github.com/jsamuelsen11/task-planner/internal/ports"
)

// BoardHandler handles HTTP requests for boards.
type BoardHandler struct {
	svc ports.BoardService
}

// NewBoardHandler creates a new BoardHandler with the given service port.
func NewBoardHandler(svc ports.BoardService) *BoardHandler {
	return &BoardHandler{svc: svc}
}

// CreateBoard handles POST /api/v1/boards.
func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBoardRequest
	if !bind(w, r, &req) {
		return
	}

	created, err := h.svc.CreateBoard(r.Context(), req.ToBoard())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, dto.ToBoardResponse(created))
}

// GetBoard handles GET /api/v1/boards/{id}.
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	view, err := h.svc.GetBoard(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, dto.ToBoardViewResponse(view))
}

// CloseBoard handles POST /api/v1/boards/{id}/close.
func (h *BoardHandler) CloseBoard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	closed, err := h.svc.CloseBoard(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, dto.ToBoardResponse(closed))
}

// ListTasks handles GET /api/v1/boards/{id}/tasks.
func (h *BoardHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	tasks, err := h.svc.ListTasks(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, dto.ToTaskListResponse(tasks))
}

// ListTeamBoards handles GET /api/v1/teams/{id}/boards. The optional status
// query parameter is OPEN (default), CLOSED or ALL.
func (h *BoardHandler) ListTeamBoards(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	filter, err := board.ParseFilter(r.URL.Query().Get("status"))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	boards, err := h.svc.ListBoards(r.Context(), id, filter)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, dto.ToBoardListResponse(boards))
}
