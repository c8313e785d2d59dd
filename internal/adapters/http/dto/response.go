// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/jsamuelsen11/task-planner/internal/domain/board"
	"github.com/jsamuelsen11/task-planner/internal/domain/export"
	"github.com/jsamuelsen11/task-planner/internal/domain/task"
	"github.com/jsamuelsen11/task-planner/internal/domain/team"
	"github.com/jsamuelsen11/task-planner/internal/domain/user"
	"github.com/jsamuelsen11/task-planner/internal/ports"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// UserResponse represents a single user in HTTP responses.
type UserResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	CreatedAt   string `json:"created_at"`
}

// UserListResponse represents a list of users in HTTP responses.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Count int            `json:"count"`
}

// ToUserResponse converts a domain User to an HTTP response DTO.
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		DisplayName: u.DisplayName,
		CreatedAt:   formatTime(u.CreatedAt),
	}
}

// ToUserListResponse converts a slice of domain Users to an HTTP list
// response DTO.
func ToUserListResponse(users []user.User) UserListResponse {
	items := make([]UserResponse, len(users))
	for i := range users {
		items[i] = ToUserResponse(&users[i])
	}
	return UserListResponse{Users: items, Count: len(items)}
}

// TeamResponse represents a single team in HTTP responses. MemberIDs is
// omitted from list responses.
type TeamResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	AdminID     string   `json:"admin_id"`
	MemberIDs   []string `json:"member_ids,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

// TeamListResponse represents a list of teams in HTTP responses.
type TeamListResponse struct {
	Teams []TeamResponse `json:"teams"`
	Count int            `json:"count"`
}

// ToTeamResponse converts a domain Team to an HTTP response DTO.
func ToTeamResponse(t *team.Team) TeamResponse {
	return TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		AdminID:     t.AdminID,
		MemberIDs:   t.MemberIDs,
		CreatedAt:   formatTime(t.CreatedAt),
	}
}

// ToTeamListResponse converts a slice of domain Teams to an HTTP list
// response DTO.
func ToTeamListResponse(teams []team.Team) TeamListResponse {
	items := make([]TeamResponse, len(teams))
	for i := range teams {
		items[i] = ToTeamResponse(&teams[i])
	}
	return TeamListResponse{Teams: items, Count: len(items)}
}

// BoardResponse represents a single board in HTTP responses. Tasks are
// present only when describing a board.
type BoardResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	TeamID      string         `json:"team_id"`
	Status      string         `json:"status"`
	CreatedAt   string         `json:"created_at"`
	EndTime     *string        `json:"end_time"`
	Tasks       []TaskResponse `json:"tasks,omitempty"`
}

// BoardListResponse represents a list of boards in HTTP responses.
type BoardListResponse struct {
	Boards []BoardResponse `json:"boards"`
	Count  int             `json:"count"`
}

// ToBoardResponse converts a domain Board to an HTTP response DTO.
func ToBoardResponse(b *board.Board) BoardResponse {
	resp := BoardResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		TeamID:      b.TeamID,
		Status:      b.Status.String(),
		CreatedAt:   formatTime(b.CreatedAt),
	}
	if b.EndTime != nil {
		end := formatTime(*b.EndTime)
		resp.EndTime = &end
	}
	return resp
}

// ToBoardViewResponse converts a board with its tasks to an HTTP response
// DTO.
func ToBoardViewResponse(v *ports.BoardView) BoardResponse {
	resp := ToBoardResponse(&v.Board)
	if len(v.Tasks) > 0 {
		resp.Tasks = ToTaskListResponse(v.Tasks).Tasks
	}
	return resp
}

// ToBoardListResponse converts a slice of domain Boards to an HTTP list
// response DTO.
func ToBoardListResponse(boards []board.Board) BoardListResponse {
	items := make([]BoardResponse, len(boards))
	for i := range boards {
		items[i] = ToBoardResponse(&boards[i])
	}
	return BoardListResponse{Boards: items, Count: len(items)}
}

// TaskResponse represents a single task in HTTP responses.
type TaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	BoardID     string `json:"board_id"`
	UserID      string `json:"user_id"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// TaskListResponse represents a list of tasks in HTTP responses.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Count int            `json:"count"`
}

// ToTaskResponse converts a domain Task to an HTTP response DTO.
func ToTaskResponse(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		BoardID:     t.BoardID,
		UserID:      t.UserID,
		Status:      t.Status.String(),
		CreatedAt:   formatTime(t.CreatedAt),
	}
}

// ToTaskListResponse converts a slice of domain Tasks to an HTTP list
// response DTO.
func ToTaskListResponse(tasks []task.Task) TaskListResponse {
	items := make([]TaskResponse, len(tasks))
	for i := range tasks {
		items[i] = ToTaskResponse(&tasks[i])
	}
	return TaskListResponse{Tasks: items, Count: len(items)}
}

// ExportResponse represents a rendered board. OutFile is set when the
// artifact was also written to disk.
type ExportResponse struct {
	Format      string `json:"format"`
	ContentType string `json:"content_type"`
	Filename    string `json:"filename"`
	Content     string `json:"content"`
	OutFile     string `json:"out_file,omitempty"`
}

// ToExportResponse converts an export Artifact to an HTTP response DTO.
func ToExportResponse(a *export.Artifact) ExportResponse {
	return ExportResponse{
		Format:      a.Format.String(),
		ContentType: a.ContentType,
		Filename:    a.Filename,
		Content:     string(a.Content),
		OutFile:     a.Path,
	}
}
