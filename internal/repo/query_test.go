package repo

import (
	"testing"

	"corkboard/internal/domain"

	"github.com/stretchr/testify/assert"
)

func boolPtr(v bool) *bool { return &v }

func priorityPtr(p domain.Priority) *domain.Priority { return &p }

func strPtr(s string) *string { return &s }

func TestFilterWhereClause(t *testing.T) {
	tests := []struct {
		name     string
		filter   Filter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "empty filter contributes nothing",
			filter:   Filter{},
			wantSQL:  "",
			wantArgs: []any{},
		},
		{
			name:     "completed only",
			filter:   Filter{Completed: boolPtr(true)},
			wantSQL:  " WHERE completed = $1",
			wantArgs: []any{true},
		},
		{
			name:     "priority only",
			filter:   Filter{Priority: priorityPtr(domain.PriorityHigh)},
			wantSQL:  " WHERE priority = $1",
			wantArgs: []any{"high"},
		},
		{
			name:     "search matches title or description",
			filter:   Filter{Search: "milk"},
			wantSQL:  " WHERE (title ILIKE $1 OR COALESCE(description, '') ILIKE $1)",
			wantArgs: []any{"%milk%"},
		},
		{
			name:     "search is trimmed",
			filter:   Filter{Search: "  milk  "},
			wantSQL:  " WHERE (title ILIKE $1 OR COALESCE(description, '') ILIKE $1)",
			wantArgs: []any{"%milk%"},
		},
		{
			name:     "blank search contributes nothing",
			filter:   Filter{Search: "   "},
			wantSQL:  "",
			wantArgs: []any{},
		},
		{
			name:   "all predicates combine with AND",
			filter: Filter{Completed: boolPtr(false), Priority: priorityPtr(domain.PriorityLow), Search: "x"},
			wantSQL: " WHERE completed = $1 AND priority = $2" +
				" AND (title ILIKE $3 OR COALESCE(description, '') ILIKE $3)",
			wantArgs: []any{false, "low", "%x%"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.filter.whereClause([]any{})
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestSortOrderClause(t *testing.T) {
	tests := []struct {
		name string
		sort Sort
		want string
	}{
		{"default is createdAt desc", Sort{}, " ORDER BY created_at DESC"},
		{"updatedAt asc", Sort{Field: "updatedAt", Order: "asc"}, " ORDER BY updated_at ASC"},
		{"title desc", Sort{Field: "title", Order: "desc"}, " ORDER BY title DESC"},
		{"priority asc", Sort{Field: "priority", Order: "asc"}, " ORDER BY priority ASC"},
		{"unknown field falls back to created_at", Sort{Field: "id; DROP TABLE todos", Order: "asc"}, " ORDER BY created_at ASC"},
		{"unknown order falls back to desc", Sort{Field: "title", Order: "sideways"}, " ORDER BY title DESC"},
		{"order is case-insensitive", Sort{Field: "title", Order: "ASC"}, " ORDER BY title ASC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sort.orderClause())
		})
	}
}

func TestPageLimitClause(t *testing.T) {
	tests := []struct {
		name     string
		page     Page
		wantSQL  string
		wantArgs []any
	}{
		{"zero page contributes nothing", Page{}, "", []any{}},
		{"limit only", Page{Limit: 20}, " LIMIT $1", []any{20}},
		{"limit and offset", Page{Limit: 20, Offset: 40}, " LIMIT $1 OFFSET $2", []any{20, 40}},
		{"offset without limit is ignored", Page{Offset: 40}, "", []any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.page.limitClause([]any{})
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestUpdatePatchSetClause(t *testing.T) {
	t.Run("empty patch still refreshes updated_at", func(t *testing.T) {
		set, args := UpdatePatch{}.setClause([]any{int64(7)})
		assert.Equal(t, "updated_at = NOW()", set)
		assert.Equal(t, []any{int64(7)}, args)
	})

	t.Run("placeholders continue after the id", func(t *testing.T) {
		patch := UpdatePatch{
			Title:       strPtr("buy milk"),
			Description: strPtr(""),
			Completed:   boolPtr(true),
			Priority:    priorityPtr(domain.PriorityHigh),
		}
		set, args := patch.setClause([]any{int64(7)})
		assert.Equal(t,
			"updated_at = NOW(), title = $2, description = NULLIF($3, ''), completed = $4, priority = $5",
			set)
		assert.Equal(t, []any{int64(7), "buy milk", "", true, "high"}, args)
	})

	t.Run("created_at is never part of the SET", func(t *testing.T) {
		set, _ := UpdatePatch{Title: strPtr("x")}.setClause([]any{int64(1)})
		assert.NotContains(t, set, "created_at")
	})
}
