package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Discount is a time-boxed price reduction for a game, stored in
// `game_discounts`.  A discount applies in the half-open window
// [Start, Finish).
type Discount struct {
	ID            int64           `json:"id"`            // game_discounts.id
	GameID        int64           `json:"gameId"`        // game_discounts.game_id
	DiscountPrice decimal.Decimal `json:"discountPrice"` // game_discounts.discount_price
	Start         time.Time       `json:"start"`         // game_discounts.discount_start
	Finish        time.Time       `json:"finish"`        // game_discounts.discount_finish
}

// OpenAt reports whether now falls inside the discount window.
func (d Discount) OpenAt(now time.Time) bool {
	return !d.Start.After(now) && d.Finish.After(now)
}
