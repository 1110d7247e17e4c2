package catalog

import (
	"time"

	"github.com/iliyamo/game-storefront/internal/model"
)

// Status is the per-viewer state shown next to a game.
type Status struct {
	IsWishlisted bool            `json:"isWishlisted"`
	IsInCart     bool            `json:"isInCart"`
	IsOwned      bool            `json:"isOwned"`
	Discount     *model.Discount `json:"discount,omitempty"`
}

// ActiveDiscount returns the cheapest discount for g that is open at
// now and undercuts the regular price, or nil.
func ActiveDiscount(g model.Game, discounts []model.Discount, now time.Time) *model.Discount {
	var best *model.Discount
	for i := range discounts {
		d := discounts[i]
		if d.GameID != g.ID || !d.OpenAt(now) || !d.DiscountPrice.LessThan(g.RegularPrice) {
			continue
		}
		if best == nil || d.DiscountPrice.LessThan(best.DiscountPrice) {
			best = &d
		}
	}
	return best
}

// HasOpenDiscountWindow reports whether any discount is open at now.
// The price is not compared; this backs the "discounted" filter.
func HasOpenDiscountWindow(discounts []model.Discount, now time.Time) bool {
	for _, d := range discounts {
		if d.OpenAt(now) {
			return true
		}
	}
	return false
}

// AverageRating is the mean review rating truncated toward zero, or 0
// when there are no reviews.
func AverageRating(reviews []model.Review) int {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return sum / len(reviews)
}
