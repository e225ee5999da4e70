package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"corkboard/internal/domain"
	"corkboard/internal/dto"
	"corkboard/internal/repo"
	"corkboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memGuestRepo struct {
	nextID  int64
	entries []domain.GuestEntry
}

var _ repo.GuestRepo = (*memGuestRepo)(nil)

func (m *memGuestRepo) Create(_ context.Context, e domain.GuestEntry) (domain.GuestEntry, error) {
	for _, existing := range m.entries {
		if existing.Email == e.Email {
			return domain.GuestEntry{}, &pgconn.PgError{Code: "23505"}
		}
	}
	m.nextID++
	e.ID = m.nextID
	e.CreatedAt = time.Now()
	m.entries = append(m.entries, e)
	return e, nil
}

func (m *memGuestRepo) List(_ context.Context) ([]domain.GuestEntry, error) {
	out := make([]domain.GuestEntry, len(m.entries))
	for i := range m.entries {
		out[i] = m.entries[len(m.entries)-1-i]
	}
	return out, nil
}

func setupGuestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewGuestBookHandler(service.NewGuestService(&memGuestRepo{}))
	r.POST("/guestbook", h.Sign)
	r.GET("/guestbook", h.List)
	return r
}

func TestGuestBookHandler_Sign(t *testing.T) {
	r := setupGuestRouter()

	w := doJSON(t, r, http.MethodPost, "/guestbook", gin.H{"name": "Ada", "email": "ada@example.com", "message": "hi"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.GuestEntryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Ada", resp.Name)
	assert.Equal(t, "ada@example.com", resp.Email)

	// same email again
	w = doJSON(t, r, http.MethodPost, "/guestbook", gin.H{"name": "Imposter", "email": "ada@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	errResp := decodeErr(t, w)
	assert.Equal(t, "VALIDATION_ERROR", errResp.Error.Code)
	assert.Equal(t, "email", errResp.Error.Field)
}

func TestGuestBookHandler_SignFromForm(t *testing.T) {
	r := setupGuestRouter()

	form := url.Values{"name": {"Grace"}, "email": {"grace@example.com"}}
	req := httptest.NewRequest(http.MethodPost, "/guestbook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestGuestBookHandler_SignValidation(t *testing.T) {
	r := setupGuestRouter()

	tests := []struct {
		name  string
		body  gin.H
		field string
	}{
		{"missing name", gin.H{"email": "a@b.co"}, "name"},
		{"missing email", gin.H{"name": "Ada"}, "email"},
		{"bad email", gin.H{"name": "Ada", "email": "nope"}, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/guestbook", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeErr(t, w)
			assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
			assert.Equal(t, tt.field, resp.Error.Field)
		})
	}
}

func TestGuestBookHandler_List(t *testing.T) {
	r := setupGuestRouter()

	w := doJSON(t, r, http.MethodPost, "/guestbook", gin.H{"name": "First", "email": "first@example.com"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/guestbook", gin.H{"name": "Second", "email": "second@example.com"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/guestbook", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ListGuestEntriesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Second", resp.Items[0].Name)
}
