// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/task-planner/internal/adapters/http/handlers"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Users  *handlers.UserHandler
	Teams  *handlers.TeamHandler
	Boards *handlers.BoardHandler
	Tasks  *handlers.TaskHandler
	Export *handlers.ExportHandler
	Health *handlers.HealthHandler
}

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(h Handlers, middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", h.Health.Liveness)
	r.Get("/health/ready", h.Health.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/users", h.Users.ListUsers)
		r.Post("/users", h.Users.CreateUser)
		r.Get("/users/{id}", h.Users.GetUser)
		r.Patch("/users/{id}", h.Users.UpdateUser)
		r.Get("/users/{id}/teams", h.Users.ListUserTeams)

		r.Get("/teams", h.Teams.ListTeams)
		r.Post("/teams", h.Teams.CreateTeam)
		r.Get("/teams/{id}", h.Teams.GetTeam)
		r.Put("/teams/{id}", h.Teams.UpdateTeam)
		r.Delete("/teams/{id}", h.Teams.DeleteTeam)
		r.Get("/teams/{id}/members", h.Teams.ListMembers)
		r.Post("/teams/{id}/members", h.Teams.AddMembers)
		r.Delete("/teams/{id}/members", h.Teams.RemoveMembers)
		r.Get("/teams/{id}/boards", h.Boards.ListTeamBoards)

		r.Post("/boards", h.Boards.CreateBoard)
		r.Get("/boards/{id}", h.Boards.GetBoard)
		r.Post("/boards/{id}/close", h.Boards.CloseBoard)
		r.Get("/boards/{id}/tasks", h.Boards.ListTasks)
		r.Get("/boards/{id}/export", h.Export.ExportBoard)

		r.Post("/tasks", h.Tasks.CreateTask)
		r.Get("/tasks/{id}", h.Tasks.GetTask)
		r.Put("/tasks/{id}/status", h.Tasks.UpdateTaskStatus)
	})

	return r
}
