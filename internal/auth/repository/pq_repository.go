package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/contextly-dev/contextly/internal/auth"
	"github.com/contextly-dev/contextly/internal/models"
)

type authRepo struct {
	db *sqlx.DB
}

func NewAuthRepo(db *sqlx.DB) auth.Repository {
	return &authRepo{
		db: db,
	}
}

func (r *authRepo) Register(ctx context.Context, user *models.User) (*models.User, error) {
	created := &models.User{}
	if err := r.db.QueryRowxContext(
		ctx,
		createUserQuery,
		user.Username,
		user.Email,
		user.Password,
		user.Role,
	).StructScan(created); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

func (r *authRepo) FindByEmail(ctx context.Context, user *models.User) (*models.User, error) {
	found := &models.User{}
	if err := r.db.QueryRowxContext(
		ctx,
		getUserByEmailQuery,
		user.Email,
	).StructScan(found); err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return found, nil
}

func (r *authRepo) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user := &models.User{}
	if err := r.db.QueryRowxContext(
		ctx,
		getUserQuery,
		userID,
	).StructScan(user); err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}
