package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/game-storefront/internal/model"
)

// UserRepo looks up users for viewer resolution.  Accounts are created
// and authenticated by the identity service; this repo only reads.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// GetByID fetches a user by id.  It returns ErrUserNotFound when no
// row matches.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, role FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}
