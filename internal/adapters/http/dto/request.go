package dto

import (
	"strings"

	"github.com/jsamuelsen11/task-planner/internal/domain/board"
	"github.com/jsamuelsen11/task-planner/internal/domain/task"
	"github.com/jsamuelsen11/task-planner/internal/domain/team"
	"github.com/jsamuelsen11/task-planner/internal/domain/user"
)

// CreateUserRequest represents the JSON body for creating a user.
type CreateUserRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// ToUser maps the request to a domain User.
func (r *CreateUserRequest) ToUser() *user.User {
	return &user.User{Name: trim(r.Name), DisplayName: trim(r.DisplayName)}
}

// Validate checks required fields and lengths.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateUserRequest) Validate() error {
	return r.ToUser().Validate()
}

// UpdateUserRequest represents the JSON body for updating a user. Name may
// be sent but must match the stored name.
type UpdateUserRequest struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"display_name"`
}

// ToUpdate maps the request to a domain user.Update.
func (r *UpdateUserRequest) ToUpdate() user.Update {
	return user.Update{Name: r.Name, DisplayName: r.DisplayName}
}

// Validate is a no-op: every rule depends on the stored user.
func (r *UpdateUserRequest) Validate() error {
	return nil
}

// TeamRequest represents the JSON body for creating or replacing a team.
type TeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	AdminID     string `json:"admin_id"`
}

// ToTeam maps the request to a domain Team.
func (r *TeamRequest) ToTeam() *team.Team {
	return &team.Team{Name: trim(r.Name), Description: trim(r.Description), AdminID: trim(r.AdminID)}
}

// Validate checks required fields and lengths.
// Returns a *domain.ValidationError if any checks fail.
func (r *TeamRequest) Validate() error {
	return r.ToTeam().Validate()
}

// MembersRequest represents the JSON body for adding or removing team
// members.
type MembersRequest struct {
	UserIDs []string `json:"user_ids"`
}

// Validate checks the batch is non-empty and within the batch limit.
func (r *MembersRequest) Validate() error {
	_, err := team.NormalizeBatch(r.UserIDs)
	return err
}

// CreateBoardRequest represents the JSON body for creating a board.
type CreateBoardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TeamID      string `json:"team_id"`
}

// ToBoard maps the request to a domain Board.
func (r *CreateBoardRequest) ToBoard() *board.Board {
	return &board.Board{Name: trim(r.Name), Description: trim(r.Description), TeamID: trim(r.TeamID)}
}

// Validate checks required fields and lengths.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateBoardRequest) Validate() error {
	return r.ToBoard().Validate()
}

// CreateTaskRequest represents the JSON body for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	BoardID     string `json:"board_id"`
	UserID      string `json:"user_id"`
}

// ToTask maps the request to a domain Task.
func (r *CreateTaskRequest) ToTask() *task.Task {
	return &task.Task{
		Title:       trim(r.Title),
		Description: trim(r.Description),
		BoardID:     trim(r.BoardID),
		UserID:      trim(r.UserID),
	}
}

// Validate checks required fields and lengths.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateTaskRequest) Validate() error {
	return r.ToTask().Validate()
}

// UpdateTaskStatusRequest represents the JSON body for changing a task's
// status.
type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

// ToStatus returns the requested status with surrounding whitespace removed.
func (r *UpdateTaskStatusRequest) ToStatus() task.Status {
	return task.Status(trim(r.Status))
}

// Validate checks the status is one of OPEN, IN_PROGRESS, COMPLETE.
func (r *UpdateTaskStatusRequest) Validate() error {
	_, err := task.ParseStatus(r.Status)
	return err
}

// trim drops surrounding whitespace so length limits apply to what the
// services store.
func trim(s string) string {
	return strings.TrimSpace(s)
}
