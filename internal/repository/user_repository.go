package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/JohirU-coder/landlord-property-service/internal/model"
)

// UserRepository reads the users table owned by the account service.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID returns ErrNotFound when no user has the id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const q = `
		SELECT id, role, first_name, last_name, email
		FROM users
		WHERE id = $1`

	var u model.User
	if err := r.db.GetContext(ctx, &u, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("UserRepository.GetByID: %w", err)
	}
	return &u, nil
}
