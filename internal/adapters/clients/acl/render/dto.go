// Package render holds the wire types of the board formatting service's
// POST /v1/render endpoint and their translation from the export snapshot.
package render

// RequestDTO matches the formatting service's RenderRequest schema.
type RequestDTO struct {
	Format string   `json:"format"`
	Board  BoardDTO `json:"board"`
}

// BoardDTO is the board part of a render request. Timestamps are RFC 3339;
// EndTime is omitted while the board is open.
type BoardDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Team        string    `json:"team"`
	CreatedAt   string    `json:"created_at"`
	EndTime     string    `json:"end_time,omitempty"`
	Tasks       []TaskDTO `json:"tasks"`
}

// TaskDTO is one task of a render request.
type TaskDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Assignee    string `json:"assignee"`
	CreatedAt   string `json:"created_at"`
}

// ResponseDTO matches the formatting service's RenderResponse schema.
type ResponseDTO struct {
	Format  string `json:"format"`
	Content string `json:"content"`
}
