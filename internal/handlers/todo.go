package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"corkboard/internal/apperr"
	"corkboard/internal/domain"
	"corkboard/internal/dto"
	"corkboard/internal/repo"
	"corkboard/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// Create handles POST /todos.
func (h *TodoHandler) Create(c *gin.Context) {
	var req dto.CreateTodoRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, apperr.Validation("body", "request body is malformed"))
		return
	}
	t, err := h.svc.Create(c.Request.Context(), service.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.Priority(req.Priority),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TodoToResponse(*t))
}

// List handles GET /todos with optional filter, sort and pagination params.
func (h *TodoHandler) List(c *gin.Context) {
	opts, ok := parseListOptions(c)
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTodosResponse{Items: dto.TodosToResponses(list)})
}

// Search handles GET /todos/search?q=... with the same optional filter,
// sort and pagination params as List.
func (h *TodoHandler) Search(c *gin.Context) {
	opts, ok := parseListOptions(c)
	if !ok {
		return
	}
	list, err := h.svc.Search(c.Request.Context(), c.Query("q"), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTodosResponse{Items: dto.TodosToResponses(list)})
}

// Stats handles GET /todos/stats.
func (h *TodoHandler) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatsToResponse(st))
}

// GetByID handles GET /todos/:id.
func (h *TodoHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if t == nil {
		respondError(c, apperr.NotFound("todo not found"))
		return
	}
	c.JSON(http.StatusOK, dto.TodoToResponse(*t))
}

// Update handles PATCH /todos/:id with a partial body.
func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTodoRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, apperr.Validation("body", "request body is malformed"))
		return
	}
	t, err := h.svc.Update(c.Request.Context(), id, updateInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	if t == nil {
		respondError(c, apperr.NotFound("todo not found"))
		return
	}
	c.JSON(http.StatusOK, dto.TodoToResponse(*t))
}

// Delete handles DELETE /todos/:id.
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondError(c, apperr.NotFound("todo not found"))
		return
	}
	c.JSON(http.StatusOK, dto.DeleteTodoResponse{Deleted: true})
}

// Toggle handles POST /todos/:id/toggle.
func (h *TodoHandler) Toggle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.ToggleComplete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if t == nil {
		respondError(c, apperr.NotFound("todo not found"))
		return
	}
	c.JSON(http.StatusOK, dto.TodoToResponse(*t))
}

// BulkUpdate handles PATCH /todos/bulk.
func (h *TodoHandler) BulkUpdate(c *gin.Context) {
	var req dto.BulkUpdateTodosRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, apperr.Validation("body", "request body is malformed"))
		return
	}
	n, err := h.svc.BulkUpdate(c.Request.Context(), req.IDs, updateInput(req.UpdateTodoRequest))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BulkUpdateTodosResponse{Updated: n})
}

func updateInput(req dto.UpdateTodoRequest) service.UpdateTodoInput {
	in := service.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		in.Priority = &p
	}
	return in
}

// parseListOptions reads completed, priority, sort, order, limit and offset
// query params. Limit is clamped to maxPageLimit; bad enum values are
// rejected before the service is called.
func parseListOptions(c *gin.Context) (service.ListOptions, bool) {
	var opts service.ListOptions

	if raw, present := c.GetQuery("completed"); present {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, apperr.Validation("completed", "completed must be true or false"))
			return opts, false
		}
		opts.Filter.Completed = &v
	}
	if raw, present := c.GetQuery("priority"); present {
		p := domain.Priority(strings.TrimSpace(raw))
		if !p.Valid() {
			respondError(c, apperr.Validation("priority", "priority must be one of low, medium, high"))
			return opts, false
		}
		opts.Filter.Priority = &p
	}
	opts.Filter.Search = c.Query("q")

	opts.Sort = repo.Sort{Field: c.Query("sort"), Order: c.Query("order")}

	opts.Page.Limit = defaultPageLimit
	if raw, present := c.GetQuery("limit"); present {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, apperr.Validation("limit", "limit must be a positive integer"))
			return opts, false
		}
		if n > maxPageLimit {
			n = maxPageLimit
		}
		opts.Page.Limit = n
	}
	if raw, present := c.GetQuery("offset"); present {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(c, apperr.Validation("offset", "offset must be a non-negative integer"))
			return opts, false
		}
		opts.Page.Offset = n
	}
	return opts, true
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondError(c, apperr.Validation(name, "id must be a positive integer"))
		return 0, false
	}
	return id, true
}

// respondError renders a classified error with its taxonomy status; anything
// else becomes a 500 with the generic message.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if ae := apperr.As(err); ae != nil {
		status = ae.Status()
	}
	c.JSON(status, dto.NewErrorResponse(err))
}
