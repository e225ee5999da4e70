package dto

import (
	"time"

	"corkboard/internal/domain"
)

// SignGuestBookRequest is the body for POST /guestbook (JSON or form-encoded).
type SignGuestBookRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

type GuestEntryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type ListGuestEntriesResponse struct {
	Items []GuestEntryResponse `json:"items"`
}

func GuestEntryToResponse(e domain.GuestEntry) GuestEntryResponse {
	return GuestEntryResponse{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
	}
}

func GuestEntriesToResponses(list []domain.GuestEntry) []GuestEntryResponse {
	out := make([]GuestEntryResponse, len(list))
	for i := range list {
		out[i] = GuestEntryToResponse(list[i])
	}
	return out
}
