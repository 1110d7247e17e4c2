package model

import "github.com/shopspring/decimal"

// Game represents a catalog entry for sale in the store.  It
// corresponds to a row in the `games` table joined with its
// category.  Discounts, images and reviews reference the game by
// GameID and are loaded separately.
//
// Fields:
//  ID           – primary key identifier.
//  CategoryID   – foreign key into game_types.
//  CategoryName – name of the category, filled by joins (read only).
//  Name         – display name of the game.
//  Developer    – studio that made the game.
//  Rating       – content rating (E, E10+, T, M, AO, RP).
//  RegularPrice – list price before discounts.
//  Version      – optimistic concurrency token, incremented on update.
type Game struct {
	ID           int64           `json:"id"`                     // games.id
	CategoryID   int64           `json:"categoryId"`             // games.game_type_id
	CategoryName string          `json:"categoryName,omitempty"` // game_types.name
	Name         string          `json:"name"`                   // games.name
	Developer    string          `json:"developer"`              // games.developer
	Rating       string          `json:"rating"`                 // games.rating
	RegularPrice decimal.Decimal `json:"price"`                  // games.regular_price
	Version      int64           `json:"version"`                // games.version
}

// Category represents a row in the `game_types` table.  Every game
// belongs to exactly one category.
type Category struct {
	ID   int64  `json:"id"`   // game_types.id
	Name string `json:"name"` // game_types.name
}

// CategoryCount pairs a category with the number of games that
// reference it.
type CategoryCount struct {
	Category
	Games int `json:"games"`
}
