package catalog

import (
	"testing"

	"github.com/iliyamo/game-storefront/internal/model"
)

func TestPriceFacetMarksSelection(t *testing.T) {
	g := PriceFacet(PriceFree)
	if g.FormName != "price" || len(g.Filters) != 8 {
		t.Fatalf("unexpected group %+v", g)
	}
	selected := 0
	for _, f := range g.Filters {
		if f.IsSelected {
			selected++
			if f.Value != "free" {
				t.Fatalf("wrong item selected: %+v", f)
			}
		}
	}
	if selected != 1 {
		t.Fatalf("expected one selected item, got %d", selected)
	}
	if g.Filters[0].Value != "u6" || g.Filters[5].Name != "$30+" {
		t.Fatalf("unexpected order %+v", g.Filters)
	}
}

func TestPriceFacetNoSelection(t *testing.T) {
	for _, f := range PriceFacet(PriceNone).Filters {
		if f.IsSelected {
			t.Fatalf("nothing should be selected, got %+v", f)
		}
	}
}

func TestCategoryFacet(t *testing.T) {
	counts := []model.CategoryCount{
		{Category: model.Category{ID: 2, Name: "RPG"}, Games: 3},
		{Category: model.Category{ID: 1, Name: "Action"}, Games: 2},
		{Category: model.Category{ID: 3, Name: "Empty"}, Games: 0},
	}
	g := CategoryFacet(counts, "rpg")
	if g.FormName != "category" {
		t.Fatalf("unexpected form name %q", g.FormName)
	}
	if len(g.Filters) != 2 {
		t.Fatalf("expected empty categories to be dropped, got %+v", g.Filters)
	}
	if g.Filters[0].Name != "Action" || g.Filters[1].Name != "RPG" {
		t.Fatalf("expected sorting by name, got %+v", g.Filters)
	}
	if g.Filters[1].Value != "rpg" || g.Filters[1].Count != 3 || !g.Filters[1].IsSelected {
		t.Fatalf("unexpected RPG item %+v", g.Filters[1])
	}
	if g.Filters[0].IsSelected {
		t.Fatalf("Action must not be selected")
	}
}
