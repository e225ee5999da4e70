package domain

import "time"

// GuestEntry is a signed guestbook entry. Email is unique per table.
type GuestEntry struct {
	ID        int64
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}
