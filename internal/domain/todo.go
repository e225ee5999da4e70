package domain

import "time"

// Priority is the closed set of todo priorities. External input arrives as a
// raw string and must pass Valid() at the boundary.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Domain entity: the business object. Does not depend on Gin, Postgres or Redis.
type Todo struct {
	ID          int64
	Title       string
	Description string
	Completed   bool
	Priority    Priority

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PriorityCounts is the per-priority slice of a stats snapshot.
type PriorityCounts struct {
	Low    int64
	Medium int64
	High   int64
}

// TodoStats is a point-in-time aggregate over the todos table. The counts are
// taken with independent queries, so a concurrent write may land between them.
type TodoStats struct {
	Total      int64
	Completed  int64
	Pending    int64
	ByPriority PriorityCounts
}
