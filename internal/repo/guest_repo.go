package repo

import (
	"context"

	"corkboard/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GuestRepo provides guestbook persistence.
type GuestRepo interface {
	Create(ctx context.Context, e domain.GuestEntry) (domain.GuestEntry, error)
	List(ctx context.Context) ([]domain.GuestEntry, error)
}

const guestColumns = "id, name, email, COALESCE(message, ''), created_at"

// PGGuestRepo implements GuestRepo with Postgres.
type PGGuestRepo struct {
	db *pgxpool.Pool
}

// NewPGGuestRepo returns a new PGGuestRepo.
func NewPGGuestRepo(db *pgxpool.Pool) *PGGuestRepo {
	return &PGGuestRepo{db: db}
}

// Create inserts a new entry. A duplicate email surfaces as the driver's
// unique-violation error.
func (r *PGGuestRepo) Create(ctx context.Context, e domain.GuestEntry) (domain.GuestEntry, error) {
	query := `
		INSERT INTO guestbook_entries (name, email, message)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING ` + guestColumns
	var out domain.GuestEntry
	err := r.db.QueryRow(ctx, query, e.Name, e.Email, e.Message).Scan(
		&out.ID, &out.Name, &out.Email, &out.Message, &out.CreatedAt,
	)
	return out, err
}

// List returns all entries, newest first.
func (r *PGGuestRepo) List(ctx context.Context) ([]domain.GuestEntry, error) {
	query := `SELECT ` + guestColumns + ` FROM guestbook_entries ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.GuestEntry
	for rows.Next() {
		var e domain.GuestEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
