// Package repository contains data access logic separated from HTTP handlers.
// This file defines the game repository: listing the catalog with category
// names joined in, single lookups and the admin write operations.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/game-storefront/internal/model"
)

// ErrGameNotFound is returned when a game cannot be found in the DB.
var ErrGameNotFound = errors.New("game not found")

// GameRepo encapsulates all database queries related to games.  It
// depends on a sql.DB connection which should be configured elsewhere.
type GameRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewGameRepo constructs a GameRepo with the provided DB handle.
func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{db: db}
}

const gameColumns = `g.id, g.game_type_id, t.name, g.name, g.developer, g.rating, g.regular_price, g.version`

func scanGame(sc interface{ Scan(...any) error }, g *model.Game) error {
	return sc.Scan(&g.ID, &g.CategoryID, &g.CategoryName, &g.Name, &g.Developer, &g.Rating, &g.RegularPrice, &g.Version)
}

// ListAll returns every game with its category name, ordered by id.
func (r *GameRepo) ListAll(ctx context.Context) ([]model.Game, error) {
	const q = `SELECT ` + gameColumns + `
	           FROM games g JOIN game_types t ON t.id = g.game_type_id
	           ORDER BY g.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Game
	for rows.Next() {
		var g model.Game
		if err := scanGame(rows, &g); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a game with its category name.  It returns
// ErrGameNotFound if no row is found.
func (r *GameRepo) GetByID(ctx context.Context, id int64) (model.Game, error) {
	const q = `SELECT ` + gameColumns + `
	           FROM games g JOIN game_types t ON t.id = g.game_type_id
	           WHERE g.id = ?`
	var g model.Game
	if err := scanGame(r.db.QueryRowContext(ctx, q, id), &g); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Game{}, ErrGameNotFound
		}
		return model.Game{}, err
	}
	return g, nil
}

// Exists reports whether a game row with id is present.
func (r *GameRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM games WHERE id = ?`, id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts a new game.  Any ID set by the caller is ignored; on
// success ID holds the generated key and Version is 1.
func (r *GameRepo) Create(ctx context.Context, g *model.Game) error {
	const q = `INSERT INTO games (game_type_id, name, developer, rating, regular_price, version)
	           VALUES (?, ?, ?, ?, ?, 1)`
	res, err := r.db.ExecContext(ctx, q, g.CategoryID, g.Name, g.Developer, g.Rating, g.RegularPrice)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = id
	g.Version = 1
	return nil
}

// Update writes the editable fields of g: category, name, developer
// and rating.  The regular price is not touched.  When g.Version is
// non-zero the row must still carry that version.  No matching row
// yields ErrConcurrencyConflict.  On success g.Version holds the new
// version.
func (r *GameRepo) Update(ctx context.Context, g *model.Game) error {
	q := `UPDATE games
	      SET game_type_id = ?, name = ?, developer = ?, rating = ?, version = version + 1
	      WHERE id = ?`
	args := []any{g.CategoryID, g.Name, g.Developer, g.Rating, g.ID}
	if g.Version > 0 {
		q += ` AND version = ?`
		args = append(args, g.Version)
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConcurrencyConflict
	}
	return r.db.QueryRowContext(ctx, `SELECT version FROM games WHERE id = ?`, g.ID).Scan(&g.Version)
}

// Delete removes a game.  Dependent discounts, images, reviews and
// library rows are removed by ON DELETE CASCADE.  Deleting a missing
// id is not an error.
func (r *GameRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	return err
}
