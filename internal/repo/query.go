package repo

import (
	"fmt"
	"strings"

	"corkboard/internal/domain"
)

// Filter narrows which todos a read returns. Nil/empty fields contribute no
// predicate; present fields are combined with AND. Search matches title OR
// description, case-insensitive.
type Filter struct {
	Completed *bool
	Priority  *domain.Priority
	Search    string
}

// Sort picks a single order-by column and direction. Unknown fields fall back
// to createdAt and unknown directions to desc, so a bad query parameter can
// never reach the SQL text.
type Sort struct {
	Field string
	Order string
}

// Page caps the result set. Zero Limit means no pagination.
type Page struct {
	Limit  int
	Offset int
}

var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"priority":  "priority",
}

// whereClause appends one parameterized predicate per present filter field and
// returns the assembled WHERE fragment (empty when the filter is empty).
func (f Filter) whereClause(args []any) (string, []any) {
	var conds []string
	if f.Completed != nil {
		args = append(args, *f.Completed)
		conds = append(conds, fmt.Sprintf("completed = $%d", len(args)))
	}
	if f.Priority != nil {
		args = append(args, string(*f.Priority))
		conds = append(conds, fmt.Sprintf("priority = $%d", len(args)))
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		args = append(args, "%"+q+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR COALESCE(description, '') ILIKE $%d)", n, n))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s Sort) orderClause() string {
	col, ok := sortColumns[s.Field]
	if !ok {
		col = "created_at"
	}
	order := strings.ToLower(s.Order)
	if order != "asc" && order != "desc" {
		order = "desc"
	}
	return fmt.Sprintf(" ORDER BY %s %s", col, strings.ToUpper(order))
}

func (p Page) limitClause(args []any) (string, []any) {
	if p.Limit <= 0 {
		return "", args
	}
	args = append(args, p.Limit)
	clause := fmt.Sprintf(" LIMIT $%d", len(args))
	if p.Offset > 0 {
		args = append(args, p.Offset)
		clause += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return clause, args
}

// UpdatePatch is a partial todo mutation. Nil fields are left untouched;
// updated_at is always refreshed, created_at never.
type UpdatePatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *domain.Priority
}

// setClause builds the SET fragment for the patch. args must already contain
// the id at $1.
func (p UpdatePatch) setClause(args []any) (string, []any) {
	sets := []string{"updated_at = NOW()"}
	if p.Title != nil {
		args = append(args, *p.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if p.Description != nil {
		args = append(args, *p.Description)
		sets = append(sets, fmt.Sprintf("description = NULLIF($%d, '')", len(args)))
	}
	if p.Completed != nil {
		args = append(args, *p.Completed)
		sets = append(sets, fmt.Sprintf("completed = $%d", len(args)))
	}
	if p.Priority != nil {
		args = append(args, string(*p.Priority))
		sets = append(sets, fmt.Sprintf("priority = $%d", len(args)))
	}
	return strings.Join(sets, ", "), args
}
