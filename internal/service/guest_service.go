package service

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"corkboard/internal/apperr"
	"corkboard/internal/domain"
	"corkboard/internal/repo"
)

const (
	maxGuestNameLen    = 120
	maxGuestMessageLen = 500
)

// GuestService handles guestbook signing and listing.
type GuestService struct {
	repo repo.GuestRepo
}

// NewGuestService returns a new GuestService.
func NewGuestService(r repo.GuestRepo) *GuestService {
	return &GuestService{repo: r}
}

// Sign validates and persists a guestbook entry. Each email may sign once;
// a duplicate surfaces as a validation error on the email field.
func (s *GuestService) Sign(ctx context.Context, name, email, message string) (*domain.GuestEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name", "name is required")
	}
	if utf8.RuneCountInString(name) > maxGuestNameLen {
		return nil, apperr.Validation("name", "name must be at most 120 characters")
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperr.Validation("email", "email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.Validation("email", "email must be a valid address")
	}
	message = strings.TrimSpace(message)
	if utf8.RuneCountInString(message) > maxGuestMessageLen {
		return nil, apperr.Validation("message", "message must be at most 500 characters")
	}

	e, err := s.repo.Create(ctx, domain.GuestEntry{Name: name, Email: email, Message: message})
	if err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Validation("email", "this email has already signed the guest book")
		}
		return nil, apperr.Database("failed to sign guest book", err)
	}
	return &e, nil
}

// List returns all entries, newest first.
func (s *GuestService) List(ctx context.Context) ([]domain.GuestEntry, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Database("failed to list guest book entries", err)
	}
	return list, nil
}
