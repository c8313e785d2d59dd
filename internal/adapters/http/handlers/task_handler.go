package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/task-planner/internal/adapters/http/dto"
	"github.com/jsamuelsen11/task-planner/internal/ports"
)

// TaskHandler handles HTTP requests for tasks.
type TaskHandler struct {
	svc ports.TaskService
}

// NewTaskHandler creates a new TaskHandler with the given service port.
func NewTaskHandler(svc ports.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// CreateTask handles POST /api/v1/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequest
	if !bind(w, r, &req) {
		return
	}

	created, err := h.svc.CreateTask(r.Context(), req.ToTask())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, dto.ToTaskResponse(created))
}

// GetTask handles GET /api/v1/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	t, err := h.svc.GetTask(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, dto.ToTaskResponse(t))
}

// UpdateTaskStatus handles PUT /api/v1/tasks/{id}/status.
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateTaskStatusRequest
	if !bind(w, r, &req) {
		return
	}

	updated, err := h.svc.UpdateTaskStatus(r.Context(), id, req.ToStatus())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, dto.ToTaskResponse(updated))
}
