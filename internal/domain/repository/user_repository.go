package repository

import (
	"context"
	"errors"

	"github.com/skmohanty2628/Finverse-AI-Finance/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no record matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when Create collides with an existing email.
	ErrEmailTaken = errors.New("email already in use")
)

// UserRepository defines the interface for user persistence. Create must be
// atomic with respect to the email-uniqueness check: concurrent creates for
// one email yield exactly one success and one ErrEmailTaken.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
