package entity

import (
	"time"
)

// User is the single persisted aggregate: one record per unique email.
// PasswordHash holds a bcrypt hash; the plain password never survives the
// request that carried it.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
