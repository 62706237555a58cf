package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/oksasatya/complaint-desk/internal/domain/apperror"
	"github.com/oksasatya/complaint-desk/internal/domain/entity"
	repo "github.com/oksasatya/complaint-desk/internal/domain/repository"
	"github.com/oksasatya/complaint-desk/pkg/helpers"
)

// bcrypt only reads the first 72 bytes of a password.
const maxPasswordBytes = 72

// CredentialStore owns user records and password hashing.
type CredentialStore struct {
	Users repo.UserRepository
	Cost  int
}

func NewCredentialStore(users repo.UserRepository, cost int) *CredentialStore {
	return &CredentialStore{Users: users, Cost: cost}
}

// Register hashes the password and persists a new user. An existing email
// yields apperror.ErrDuplicateUser whether it is caught by the lookup or by
// the unique constraint of a concurrent insert.
func (s *CredentialStore) Register(ctx context.Context, fullName, email, password string) (*entity.User, error) {
	if len(password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password longer than %d bytes", apperror.ErrValidation, maxPasswordBytes)
	}
	existing, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrDuplicateUser
	}
	hash, err := helpers.HashPassword(password, s.Cost)
	if err != nil {
		return nil, err
	}
	u := &entity.User{FullName: fullName, Email: email, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// FindByEmail returns nil, nil when no user has that email.
func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

// FindByID returns nil, nil when the user does not exist.
func (s *CredentialStore) FindByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

func (s *CredentialStore) VerifyPassword(plain, hash string) bool {
	return helpers.CompareHashAndPassword(hash, plain)
}
