package dto

import (
	"time"

	"corkboard/internal/apperr"
	"corkboard/internal/domain"
)

// CreateTodoRequest is the body for POST /todos (JSON or form-encoded).
// Constraints are enforced by the service so that every caller gets the same
// error taxonomy regardless of how the request was encoded.
type CreateTodoRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Priority    string `json:"priority" form:"priority"`
}

// UpdateTodoRequest is the body for PATCH /todos/:id. Nil = leave untouched.
type UpdateTodoRequest struct {
	Title       *string `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	Completed   *bool   `json:"completed" form:"completed"`
	Priority    *string `json:"priority" form:"priority"`
}

// BulkUpdateTodosRequest is the body for PATCH /todos/bulk: the target ids
// plus the same partial fields as a single update.
type BulkUpdateTodosRequest struct {
	IDs []int64 `json:"ids" form:"ids"`
	UpdateTodoRequest
}

// BulkUpdateTodosResponse reports how many rows actually changed.
type BulkUpdateTodosResponse struct {
	Updated int64 `json:"updated"`
}

type TodoResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListTodosResponse struct {
	Items []TodoResponse `json:"items"`
}

// DeleteTodoResponse reports whether a row was actually removed.
type DeleteTodoResponse struct {
	Deleted bool `json:"deleted"`
}

type PriorityCountsResponse struct {
	Low    int64 `json:"low"`
	Medium int64 `json:"medium"`
	High   int64 `json:"high"`
}

type TodoStatsResponse struct {
	Total      int64                  `json:"total"`
	Completed  int64                  `json:"completed"`
	Pending    int64                  `json:"pending"`
	ByPriority PriorityCountsResponse `json:"by_priority"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// NewErrorResponse renders a classified error. Anything outside the taxonomy
// gets the generic message only.
func NewErrorResponse(err error) ErrorResponse {
	if ae := apperr.As(err); ae != nil {
		return ErrorResponse{Error: ErrorBody{
			Code:    string(ae.Code),
			Message: ae.Message,
			Field:   ae.Field,
		}}
	}
	return ErrorResponse{Error: ErrorBody{
		Code:    string(apperr.CodeDatabase),
		Message: apperr.Message(err),
	}}
}

func TodoToResponse(t domain.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func TodosToResponses(list []domain.Todo) []TodoResponse {
	out := make([]TodoResponse, len(list))
	for i := range list {
		out[i] = TodoToResponse(list[i])
	}
	return out
}

func StatsToResponse(st domain.TodoStats) TodoStatsResponse {
	return TodoStatsResponse{
		Total:     st.Total,
		Completed: st.Completed,
		Pending:   st.Pending,
		ByPriority: PriorityCountsResponse{
			Low:    st.ByPriority.Low,
			Medium: st.ByPriority.Medium,
			High:   st.ByPriority.High,
		},
	}
}
