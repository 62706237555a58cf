package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/complaint-desk/internal/domain/apperror"
	"github.com/oksasatya/complaint-desk/internal/domain/entity"
	"github.com/oksasatya/complaint-desk/internal/domain/repository"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (full_name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id::text, created_at
	`, u.FullName, u.Email, u.Password)

	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		if pgCode(err) == codeUniqueViolation {
			return apperror.ErrDuplicateUser
		}
		return apperror.Storage("create user", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, "get user by id", `
		SELECT id::text, full_name, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, "get user by email", `
		SELECT id::text, full_name, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`, email)
}

func (r *UserRepository) getOne(ctx context.Context, op, query string, arg string) (*entity.User, error) {
	u := &entity.User{}
	row := r.db.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Password, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgCode(err) == codeInvalidText {
			return nil, apperror.ErrNotFound
		}
		return nil, apperror.Storage(op, err)
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
