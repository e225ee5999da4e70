package handlers

import (
	"net/http"

	"corkboard/internal/apperr"
	"corkboard/internal/dto"
	"corkboard/internal/service"

	"github.com/gin-gonic/gin"
)

type GuestBookHandler struct {
	svc *service.GuestService
}

func NewGuestBookHandler(svc *service.GuestService) *GuestBookHandler {
	return &GuestBookHandler{svc: svc}
}

// Sign handles POST /guestbook.
func (h *GuestBookHandler) Sign(c *gin.Context) {
	var req dto.SignGuestBookRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, apperr.Validation("body", "request body is malformed"))
		return
	}
	e, err := h.svc.Sign(c.Request.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.GuestEntryToResponse(*e))
}

// List handles GET /guestbook.
func (h *GuestBookHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListGuestEntriesResponse{Items: dto.GuestEntriesToResponses(list)})
}
