package repository

import (
	"context"
	"database/sql"
)

// LibraryRepo answers the per-user questions asked about a game:
// wishlisted, in the user's own cart, digitally owned.
type LibraryRepo struct{ db *sql.DB }

func NewLibraryRepo(db *sql.DB) *LibraryRepo { return &LibraryRepo{db: db} }

const (
	qWishlisted = `SELECT game_id FROM user_game_wishlists WHERE user_id = ?`
	// gift entries (receiving user differs) are excluded
	qInCart = `SELECT game_id FROM cart_games WHERE cart_user_id = ? AND receiving_user_id = ?`
	qOwned  = `SELECT game_id FROM order_items WHERE owner_user_id = ? AND physically_owned = ?`
)

func (r *LibraryRepo) exists(ctx context.Context, q string, args ...any) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM (`+q+`) x WHERE x.game_id = ?`, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *LibraryRepo) gameIDs(ctx context.Context, q string, args ...any) (map[int64]bool, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

// IsWishlisted reports whether userID has gameID on their wishlist.
func (r *LibraryRepo) IsWishlisted(ctx context.Context, userID, gameID int64) (bool, error) {
	return r.exists(ctx, qWishlisted, userID, gameID)
}

// IsInCart reports whether userID placed gameID in their cart for
// themselves.
func (r *LibraryRepo) IsInCart(ctx context.Context, userID, gameID int64) (bool, error) {
	return r.exists(ctx, qInCart, userID, userID, gameID)
}

// IsOwned reports whether userID owns a digital copy of gameID.
func (r *LibraryRepo) IsOwned(ctx context.Context, userID, gameID int64) (bool, error) {
	return r.exists(ctx, qOwned, userID, false, gameID)
}

// WishlistedGameIDs returns the set of games on userID's wishlist.
func (r *LibraryRepo) WishlistedGameIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	return r.gameIDs(ctx, qWishlisted, userID)
}

// CartGameIDs returns the set of games userID has in their own cart.
func (r *LibraryRepo) CartGameIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	return r.gameIDs(ctx, qInCart, userID, userID)
}

// OwnedGameIDs returns the set of games userID owns digitally.
func (r *LibraryRepo) OwnedGameIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	return r.gameIDs(ctx, qOwned, userID, false)
}
