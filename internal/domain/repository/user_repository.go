package repository

import (
	"context"

	"github.com/oksasatya/complaint-desk/internal/domain/entity"
)

// UserRepository defines the interface for user-related persistence.
// Lookups return apperror.ErrNotFound when nothing matches; Create returns
// apperror.ErrDuplicateUser on an email collision.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
