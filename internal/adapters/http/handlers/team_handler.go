package handlers

import (
	"context"
	"net/http"

	"github.com/jsamuelsen11/task-planner/internal/adapters/http/dto"
	"github.com/jsamuelsen11/task-planner/internal/domain/team"
	"github.com/jsamuelsen11/task-planner/internal/ports"
)

// TeamHandler handles HTTP requests for teams and their membership.
type TeamHandler struct {
	svc ports.TeamService
}

// NewTeamHandler creates a new TeamHandler with the given service port.
func NewTeamHandler(svc ports.TeamService) *TeamHandler {
	return &TeamHandler{svc: svc}
}

// ListTeams handles GET /api/v1/teams.
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.svc.ListTeams(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, dto.ToTeamListResponse(teams))
}

// CreateTeam handles POST /api/v1/teams.
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req dto.TeamRequest
	if !bind(w, r, &req) {
		return
	}

	created, err := h.svc.CreateTeam(r.Context(), req.ToTeam())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, dto.ToTeamResponse(created))
}

// GetTeam handles GET /api/v1/teams/{id}.
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	t, err := h.svc.GetTeam(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, dto.ToTeamResponse(t))
}

// UpdateTeam handles PUT /api/v1/teams/{id}. Name, description and admin
// are all replaced.
func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	var req dto.TeamRequest
	if !bind(w, r, &req) {
		return
	}

	updated, err := h.svc.UpdateTeam(r.Context(), id, req.ToTeam())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, dto.ToTeamResponse(updated))
}

// DeleteTeam handles DELETE /api/v1/teams/{id}.
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteTeam(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListMembers handles GET /api/v1/teams/{id}/members.
func (h *TeamHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	users, err := h.svc.ListMembers(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, dto.ToUserListResponse(users))
}

// AddMembers handles POST /api/v1/teams/{id}/members.
func (h *TeamHandler) AddMembers(w http.ResponseWriter, r *http.Request) {
	h.changeMembers(w, r, h.svc.AddMembers)
}

// RemoveMembers handles DELETE /api/v1/teams/{id}/members.
func (h *TeamHandler) RemoveMembers(w http.ResponseWriter, r *http.Request) {
	h.changeMembers(w, r, h.svc.RemoveMembers)
}

type membershipChange func(ctx context.Context, id string, userIDs []string) (*team.Team, error)

func (h *TeamHandler) changeMembers(w http.ResponseWriter, r *http.Request, change membershipChange) {
	id, ok := pathParam(w, r, "id")
	if !ok {
		return
	}

	var req dto.MembersRequest
	if !bind(w, r, &req) {
		return
	}

	t, err := change(r.Context(), id, req.UserIDs)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, dto.ToTeamResponse(t))
}
