package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/game-storefront/internal/model"
)

// DiscountRepo reads game_discounts.  Whether a discount is active is
// decided by the catalog package, not in SQL.
type DiscountRepo struct{ db *sql.DB }

func NewDiscountRepo(db *sql.DB) *DiscountRepo { return &DiscountRepo{db: db} }

const discountColumns = `id, game_id, discount_price, discount_start, discount_finish`

// ListByGame returns all discounts of one game ordered by id.
func (r *DiscountRepo) ListByGame(ctx context.Context, gameID int64) ([]model.Discount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+discountColumns+` FROM game_discounts WHERE game_id = ? ORDER BY id`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Discount
	for rows.Next() {
		var d model.Discount
		if err := rows.Scan(&d.ID, &d.GameID, &d.DiscountPrice, &d.Start, &d.Finish); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListByGames returns the discounts of the given games keyed by game
// id.  Large id sets are queried in chunks.
func (r *DiscountRepo) ListByGames(ctx context.Context, gameIDs []int64) (map[int64][]model.Discount, error) {
	out := make(map[int64][]model.Discount)
	for _, ids := range chunkIDs(gameIDs, maxInArgs) {
		if err := r.listChunk(ctx, ids, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *DiscountRepo) listChunk(ctx context.Context, ids []int64, out map[int64][]model.Discount) error {
	q := `SELECT ` + discountColumns + ` FROM game_discounts
	      WHERE game_id IN (` + inPlaceholders(len(ids)) + `) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, idArgs(ids)...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var d model.Discount
		if err := rows.Scan(&d.ID, &d.GameID, &d.DiscountPrice, &d.Start, &d.Finish); err != nil {
			return err
		}
		out[d.GameID] = append(out[d.GameID], d)
	}
	return rows.Err()
}
