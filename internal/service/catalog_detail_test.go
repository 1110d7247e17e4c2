package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/game-storefront/internal/model"
	"github.com/iliyamo/game-storefront/internal/service"
)

func TestDetailUnknownGame(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Detail(context.Background(), model.Anonymous(), 404)
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDetailAssemblesView(t *testing.T) {
	f := newFixture()
	cat := f.mem.AddCategory("Action")
	ann := f.mem.AddUser("ann", model.RoleCustomer)
	g := f.game(cat, "Zelda", "30")
	shot2 := f.mem.AddImage(g.ID, model.ImageRegular, "/2.png")
	banner := f.mem.AddImage(g.ID, model.ImageBanner, "/banner.png")
	shot3 := f.mem.AddImage(g.ID, model.ImageRegular, "/3.png")
	f.mem.AddReview(ann.ID, g.ID, 3, "fine")
	f.mem.AddReview(ann.ID, g.ID, 4, "good")
	d := f.mem.AddDiscount(model.Discount{GameID: g.ID, DiscountPrice: decimal.NewFromInt(20),
		Start: now, Finish: now.Add(day)})
	f.mem.AddCart(ann.ID, ann.ID, g.ID)

	view, err := f.svc.Detail(context.Background(), model.ViewerFor(ann), g.ID)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if view.Category.Name != "Action" || view.Category.ID != cat.ID {
		t.Errorf("category = %+v", view.Category)
	}
	if view.AverageRating != 3 {
		t.Errorf("average rating = %d, want 3", view.AverageRating)
	}
	if view.Image == nil || view.Image.ID != banner.ID {
		t.Errorf("banner = %+v", view.Image)
	}
	if len(view.Images) != 2 || view.Images[0].ID != shot2.ID || view.Images[1].ID != shot3.ID {
		t.Errorf("gallery = %+v", view.Images)
	}
	if view.Discount == nil || view.Discount.ID != d.ID {
		t.Errorf("discount = %+v", view.Discount)
	}
	if !view.IsInCart || view.IsWishlisted || view.IsOwned {
		t.Errorf("flags = cart %v wish %v owned %v", view.IsInCart, view.IsWishlisted, view.IsOwned)
	}
}

func TestDetailWithoutReviewsOrDiscount(t *testing.T) {
	f := newFixture()
	cat := f.mem.AddCategory("Action")
	g := f.game(cat, "Zelda", "30")
	// priced above the regular price, never active
	f.mem.AddDiscount(model.Discount{GameID: g.ID, DiscountPrice: decimal.NewFromInt(35),
		Start: now.Add(-day), Finish: now.Add(day)})

	view, err := f.svc.Detail(context.Background(), model.Anonymous(), g.ID)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if view.AverageRating != 0 || len(view.Reviews) != 0 {
		t.Errorf("rating = %d, reviews = %d", view.AverageRating, len(view.Reviews))
	}
	if view.Discount != nil {
		t.Errorf("discount = %+v, want nil", view.Discount)
	}
	if view.Image != nil || view.Images == nil {
		t.Errorf("images = %+v / %+v", view.Image, view.Images)
	}
	if f.mem.LibraryCalls != 0 {
		t.Errorf("library queried for anonymous viewer")
	}
}

func TestStatusForGame(t *testing.T) {
	f := newFixture()
	cat := f.mem.AddCategory("Action")
	ann := f.mem.AddUser("ann", model.RoleCustomer)
	g := f.game(cat, "Zelda", "30")
	f.mem.AddWishlist(ann.ID, g.ID)
	f.mem.AddOrderItem(ann.ID, g.ID, false)

	st, err := f.svc.Status(context.Background(), model.ViewerFor(ann), g)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !st.IsWishlisted || !st.IsOwned || st.IsInCart || st.Discount != nil {
		t.Errorf("status = %+v", st)
	}

	anon, err := f.svc.Status(context.Background(), model.Anonymous(), g)
	if err != nil {
		t.Fatalf("Status anonymous: %v", err)
	}
	if anon.IsWishlisted || anon.IsOwned || anon.IsInCart {
		t.Errorf("anonymous status = %+v", anon)
	}
}
