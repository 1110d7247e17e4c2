package catalog

import (
	"sort"
	"strings"

	"github.com/iliyamo/game-storefront/internal/model"
)

// FilterItem is one selectable option in a filter group.
type FilterItem struct {
	Name       string `json:"name"`
	Value      string `json:"value"`
	Count      int    `json:"count,omitempty"`
	IsSelected bool   `json:"isSelected"`
}

// FilterGroup is a facet rendered next to the listing.  FormName is
// the query parameter the group submits.
type FilterGroup struct {
	Name     string       `json:"name"`
	FormName string       `json:"formName"`
	Filters  []FilterItem `json:"filters"`
}

var priceOptions = []struct {
	label string
	price PriceFilter
}{
	{"Under $6", PriceUnder6},
	{"Under $12", PriceUnder12},
	{"Under $18", PriceUnder18},
	{"Under $24", PriceUnder24},
	{"Under $30", PriceUnder30},
	{"$30+", PriceAtLeast30},
	{"Free", PriceFree},
	{"Discounted", PriceDiscounted},
}

// PriceFacet returns the fixed price group with selected marked.
func PriceFacet(selected PriceFilter) FilterGroup {
	items := make([]FilterItem, 0, len(priceOptions))
	for _, o := range priceOptions {
		items = append(items, FilterItem{
			Name:       o.label,
			Value:      o.price.String(),
			IsSelected: o.price == selected,
		})
	}
	return FilterGroup{Name: "Price", FormName: "price", Filters: items}
}

// CategoryFacet builds the category group from counts over the whole
// catalog.  Categories without games are left out and the rest are
// sorted by name.
func CategoryFacet(counts []model.CategoryCount, selected string) FilterGroup {
	sorted := make([]model.CategoryCount, 0, len(counts))
	for _, c := range counts {
		if c.Games > 0 {
			sorted = append(sorted, c)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	selected = strings.TrimSpace(selected)
	items := make([]FilterItem, 0, len(sorted))
	for _, c := range sorted {
		items = append(items, FilterItem{
			Name:       c.Name,
			Value:      strings.ToLower(c.Name),
			Count:      c.Games,
			IsSelected: selected != "" && strings.EqualFold(c.Name, selected),
		})
	}
	return FilterGroup{Name: "Category", FormName: "category", Filters: items}
}
