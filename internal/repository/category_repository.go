package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/game-storefront/internal/model"
)

// CategoryRepo reads the game_types table.
type CategoryRepo struct{ db *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// ListAll returns all categories ordered by name.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM game_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Exists reports whether a category with id is present.
func (r *CategoryRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM game_types WHERE id = ?`, id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListWithCounts returns the categories that have at least one game,
// with the number of games in each, ordered by name.  Counts cover
// the whole catalog.
func (r *CategoryRepo) ListWithCounts(ctx context.Context) ([]model.CategoryCount, error) {
	const q = `SELECT t.id, t.name, COUNT(g.id)
	           FROM game_types t JOIN games g ON g.game_type_id = t.id
	           GROUP BY t.id, t.name
	           ORDER BY t.name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.CategoryCount
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.ID, &c.Name, &c.Games); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
