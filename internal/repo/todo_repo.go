package repo

import (
	"context"

	"corkboard/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TodoRepo provides todo persistence. Absence is reported as pgx.ErrNoRows;
// the service layer translates it.
type TodoRepo interface {
	Create(ctx context.Context, t domain.Todo) (domain.Todo, error)
	GetByID(ctx context.Context, id int64) (domain.Todo, error)
	List(ctx context.Context, f Filter, s Sort, p Page) ([]domain.Todo, error)
	Update(ctx context.Context, id int64, patch UpdatePatch) (domain.Todo, error)
	UpdateCount(ctx context.Context, id int64, patch UpdatePatch) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context, f Filter) (int64, error)
}

const todoColumns = "id, title, COALESCE(description, ''), completed, priority, created_at, updated_at"

// PGTodoRepo implements TodoRepo with Postgres.
type PGTodoRepo struct {
	db *pgxpool.Pool
}

// NewPGTodoRepo returns a new PGTodoRepo.
func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

func (r *PGTodoRepo) Create(ctx context.Context, t domain.Todo) (domain.Todo, error) {
	query := `
		INSERT INTO todos (title, description, completed, priority)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		RETURNING ` + todoColumns
	var out domain.Todo
	err := r.db.QueryRow(ctx, query, t.Title, t.Description, t.Completed, string(t.Priority)).Scan(
		&out.ID, &out.Title, &out.Description, &out.Completed, &out.Priority,
		&out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGTodoRepo) GetByID(ctx context.Context, id int64) (domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`
	var t domain.Todo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.Completed, &t.Priority,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *PGTodoRepo) List(ctx context.Context, f Filter, s Sort, p Page) ([]domain.Todo, error) {
	args := []any{}
	where, args := f.whereClause(args)
	limit, args := p.limitClause(args)
	query := `SELECT ` + todoColumns + ` FROM todos` + where + s.orderClause() + limit

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.Todo
	for rows.Next() {
		var t domain.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.Priority,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTodoRepo) Update(ctx context.Context, id int64, patch UpdatePatch) (domain.Todo, error) {
	set, args := patch.setClause([]any{id})
	query := `UPDATE todos SET ` + set + ` WHERE id = $1 RETURNING ` + todoColumns
	var t domain.Todo
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.Title, &t.Description, &t.Completed, &t.Priority,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// UpdateCount applies the patch and reports how many rows changed. Used by
// bulk updates, where the updated record itself is not needed.
func (r *PGTodoRepo) UpdateCount(ctx context.Context, id int64, patch UpdatePatch) (int64, error) {
	set, args := patch.setClause([]any{id})
	tag, err := r.db.Exec(ctx, `UPDATE todos SET `+set+` WHERE id = $1`, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PGTodoRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Count returns the number of rows matching the filter. Statistics issue
// several of these concurrently with different filters.
func (r *PGTodoRepo) Count(ctx context.Context, f Filter) (int64, error) {
	where, args := f.whereClause([]any{})
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM todos`+where, args...).Scan(&n)
	return n, err
}
