// Package catalog holds the pure catalog logic: narrowing a game
// collection by price, search text and category, computing the
// status bundle shown next to a game, and building filter facets.
// Nothing in this package touches the store.
package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/game-storefront/internal/model"
)

// ErrInvalidPriceFilter is returned for a non-empty price token that
// is not one of the known buckets.
var ErrInvalidPriceFilter = errors.New("invalid price filter")

// PriceFilter is a price bucket selectable in the listing.
type PriceFilter int

const (
	PriceNone PriceFilter = iota
	PriceUnder6
	PriceUnder12
	PriceUnder18
	PriceUnder24
	PriceUnder30
	PriceAtLeast30
	PriceFree
	PriceDiscounted
)

var priceTokens = map[PriceFilter]string{
	PriceUnder6:     "u6",
	PriceUnder12:    "u12",
	PriceUnder18:    "u18",
	PriceUnder24:    "u24",
	PriceUnder30:    "u30",
	PriceAtLeast30:  "a30",
	PriceFree:       "free",
	PriceDiscounted: "discounted",
}

var priceCaps = map[PriceFilter]decimal.Decimal{
	PriceUnder6:  decimal.NewFromInt(6),
	PriceUnder12: decimal.NewFromInt(12),
	PriceUnder18: decimal.NewFromInt(18),
	PriceUnder24: decimal.NewFromInt(24),
	PriceUnder30: decimal.NewFromInt(30),
}

var thirty = decimal.NewFromInt(30)

// String returns the query token for p, or "" for PriceNone.
func (p PriceFilter) String() string { return priceTokens[p] }

// ParsePriceFilter maps a query token to a bucket.  Blank input means
// no price filter.
func ParsePriceFilter(s string) (PriceFilter, error) {
	if strings.TrimSpace(s) == "" {
		return PriceNone, nil
	}
	for p, tok := range priceTokens {
		if tok == s {
			return p, nil
		}
	}
	return PriceNone, ErrInvalidPriceFilter
}

// Filter is the set of listing filters taken from the query string.
type Filter struct {
	Price    PriceFilter
	Search   string
	Category string
}

// Apply narrows games by search, then price, then category.  The
// filters are independent conjunctions so the order does not change
// the result.  discounts maps game id to that game's discounts and is
// only consulted for PriceDiscounted.
func Apply(games []model.Game, f Filter, discounts map[int64][]model.Discount, now time.Time) []model.Game {
	out := FilterBySearch(games, f.Search)
	out = FilterByPrice(out, f.Price, discounts, now)
	return FilterByCategory(out, f.Category)
}

// FilterByPrice keeps the games that fall in bucket p.
func FilterByPrice(games []model.Game, p PriceFilter, discounts map[int64][]model.Discount, now time.Time) []model.Game {
	switch p {
	case PriceUnder6, PriceUnder12, PriceUnder18, PriceUnder24, PriceUnder30:
		limit := priceCaps[p]
		return keep(games, func(g model.Game) bool { return g.RegularPrice.LessThan(limit) })
	case PriceAtLeast30:
		return keep(games, func(g model.Game) bool { return g.RegularPrice.GreaterThanOrEqual(thirty) })
	case PriceFree:
		return keep(games, func(g model.Game) bool { return g.RegularPrice.IsZero() })
	case PriceDiscounted:
		return keep(games, func(g model.Game) bool { return HasOpenDiscountWindow(discounts[g.ID], now) })
	default:
		return games
	}
}

// FilterBySearch keeps games whose name contains search, ignoring
// case.  Blank search keeps everything.
func FilterBySearch(games []model.Game, search string) []model.Game {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return games
	}
	return keep(games, func(g model.Game) bool {
		return strings.Contains(strings.ToLower(g.Name), needle)
	})
}

// FilterByCategory keeps games whose category name equals category,
// ignoring case.  Blank category keeps everything.
func FilterByCategory(games []model.Game, category string) []model.Game {
	category = strings.TrimSpace(category)
	if category == "" {
		return games
	}
	return keep(games, func(g model.Game) bool {
		return strings.EqualFold(g.CategoryName, category)
	})
}

func keep(games []model.Game, pred func(model.Game) bool) []model.Game {
	out := make([]model.Game, 0, len(games))
	for _, g := range games {
		if pred(g) {
			out = append(out, g)
		}
	}
	return out
}
