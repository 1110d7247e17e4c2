package model

// ImageType distinguishes the single banner shown in listings from
// the gallery images shown on the detail page.
type ImageType string

const (
	ImageBanner  ImageType = "banner"
	ImageRegular ImageType = "regular"
)

// Image is a row in `game_images`.
type Image struct {
	ID     int64     `json:"id"`     // game_images.id
	GameID int64     `json:"gameId"` // game_images.game_id
	Type   ImageType `json:"type"`   // game_images.image_type
	URL    string    `json:"url"`    // game_images.url
}

// Review is a user's rating and comment on a game (`reviews` table).
type Review struct {
	ID      int64  `json:"id"`      // reviews.id
	UserID  int64  `json:"userId"`  // reviews.user_id
	GameID  int64  `json:"gameId"`  // reviews.game_id
	Rating  int    `json:"rating"`  // reviews.rating
	Content string `json:"content"` // reviews.review_content
}
