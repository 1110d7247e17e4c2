package model

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// FieldError is a single validation failure for a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Content ratings accepted for games.
var ContentRatings = []string{"E", "E10+", "T", "M", "AO", "RP"}

const (
	maxNameLen      = 50
	maxDeveloperLen = 50
)

var maxPrice = decimal.RequireFromString("999.99")

// ValidateGame checks a game submitted through the admin forms and
// returns every failing field.  An empty result means the game is
// valid.  Category existence is checked by the caller against the
// store.
func ValidateGame(g Game) []FieldError {
	var errs []FieldError
	add := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	if g.CategoryID <= 0 {
		add("categoryId", "Category is required")
	}

	name := strings.TrimSpace(g.Name)
	switch {
	case name == "":
		add("name", "Name is required")
	case utf8.RuneCountInString(name) > maxNameLen:
		add("name", "Name must be 50 characters or less")
	}

	dev := strings.TrimSpace(g.Developer)
	switch {
	case dev == "":
		add("developer", "Developer is required")
	case utf8.RuneCountInString(dev) > maxDeveloperLen:
		add("developer", "Developer must be 50 characters or less")
	}

	if !validRating(g.Rating) {
		add("rating", "Rating must be one of E, E10+, T, M, AO, RP")
	}

	switch {
	case g.RegularPrice.IsNegative():
		add("price", "Price cannot be negative")
	case g.RegularPrice.GreaterThan(maxPrice):
		add("price", "Price must be 999.99 or less")
	case g.RegularPrice.Exponent() < -2 && !g.RegularPrice.Equal(g.RegularPrice.Round(2)):
		add("price", "Price cannot have more than two decimal places")
	}
	return errs
}

func validRating(r string) bool {
	for _, ok := range ContentRatings {
		if r == ok {
			return true
		}
	}
	return false
}
