package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/game-storefront/internal/model"
)

// ImageRepo reads game_images.
type ImageRepo struct{ db *sql.DB }

func NewImageRepo(db *sql.DB) *ImageRepo { return &ImageRepo{db: db} }

// ListByGame returns every image of a game ordered by id.
func (r *ImageRepo) ListByGame(ctx context.Context, gameID int64) ([]model.Image, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, game_id, image_type, url FROM game_images WHERE game_id = ? ORDER BY id`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Image
	for rows.Next() {
		var im model.Image
		if err := rows.Scan(&im.ID, &im.GameID, &im.Type, &im.URL); err != nil {
			return nil, err
		}
		out = append(out, im)
	}
	return out, rows.Err()
}

// BannersByGames returns the first banner image of each game that has
// one, keyed by game id.  Large id sets are queried in chunks.
func (r *ImageRepo) BannersByGames(ctx context.Context, gameIDs []int64) (map[int64]model.Image, error) {
	out := make(map[int64]model.Image)
	for _, ids := range chunkIDs(gameIDs, maxInArgs) {
		if err := r.bannerChunk(ctx, ids, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *ImageRepo) bannerChunk(ctx context.Context, ids []int64, out map[int64]model.Image) error {
	q := `SELECT id, game_id, image_type, url FROM game_images
	      WHERE image_type = ? AND game_id IN (` + inPlaceholders(len(ids)) + `)
	      ORDER BY id`
	args := append([]any{string(model.ImageBanner)}, idArgs(ids)...)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var im model.Image
		if err := rows.Scan(&im.ID, &im.GameID, &im.Type, &im.URL); err != nil {
			return err
		}
		if _, seen := out[im.GameID]; !seen {
			out[im.GameID] = im
		}
	}
	return rows.Err()
}

// ReviewRepo reads reviews.
type ReviewRepo struct{ db *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// ListByGame returns the reviews of a game ordered by id.
func (r *ReviewRepo) ListByGame(ctx context.Context, gameID int64) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, game_id, rating, review_content FROM reviews WHERE game_id = ? ORDER BY id`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Review
	for rows.Next() {
		var rv model.Review
		var content sql.NullString
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.GameID, &rv.Rating, &content); err != nil {
			return nil, err
		}
		rv.Content = content.String
		out = append(out, rv)
	}
	return out, rows.Err()
}
