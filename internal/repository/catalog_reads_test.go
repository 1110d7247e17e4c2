package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/game-storefront/internal/model"
	"github.com/iliyamo/game-storefront/internal/repository"
	"github.com/iliyamo/game-storefront/internal/testutil"
)

func TestCategoryRepoListWithCountsSkipsEmpty(t *testing.T) {
	db := testutil.OpenSQLite(t)
	seed := testutil.NewSeeder(t, db)
	rpg := seed.Category("RPG")
	action := seed.Category("Action")
	seed.Category("Empty")
	seed.Game(rpg, "A", "d", "1")
	seed.Game(action, "B", "d", "1")
	seed.Game(action, "C", "d", "1")

	got, err := repository.NewCategoryRepo(db).ListWithCounts(context.Background())
	if err != nil {
		t.Fatalf("ListWithCounts: %v", err)
	}
	want := []model.CategoryCount{
		{Category: model.Category{ID: action, Name: "Action"}, Games: 2},
		{Category: model.Category{ID: rpg, Name: "RPG"}, Games: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCategoryRepoExists(t *testing.T) {
	db := testutil.OpenSQLite(t)
	id := testutil.NewSeeder(t, db).Category("Action")
	repo := repository.NewCategoryRepo(db)
	if ok, err := repo.Exists(context.Background(), id); err != nil || !ok {
		t.Errorf("Exists(%d) = %v, %v", id, ok, err)
	}
	if ok, err := repo.Exists(context.Background(), id+1); err != nil || ok {
		t.Errorf("Exists(%d) = %v, %v", id+1, ok, err)
	}
}

func TestDiscountRepoListByGames(t *testing.T) {
	db := testutil.OpenSQLite(t)
	seed := testutil.NewSeeder(t, db)
	cat := seed.Category("Action")
	g1 := seed.Game(cat, "A", "d", "20")
	g2 := seed.Game(cat, "B", "d", "20")
	g3 := seed.Game(cat, "C", "d", "20")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	finish := start.Add(48 * time.Hour)
	seed.Discount(g1, "10", start, finish)
	seed.Discount(g1, "12.5", start, finish)
	seed.Discount(g3, "5", start, finish)

	got, err := repository.NewDiscountRepo(db).ListByGames(context.Background(), []int64{g1, g2})
	if err != nil {
		t.Fatalf("ListByGames: %v", err)
	}
	if len(got[g1]) != 2 || len(got[g2]) != 0 || len(got[g3]) != 0 {
		t.Fatalf("got %+v", got)
	}
	d := got[g1][0]
	if !d.Start.Equal(start) || !d.Finish.Equal(finish) {
		t.Errorf("window = [%v, %v), want [%v, %v)", d.Start, d.Finish, start, finish)
	}
	if d.DiscountPrice.String() != "10" {
		t.Errorf("price = %s, want 10", d.DiscountPrice)
	}
}

func TestImageRepoBannersByGamesTakesFirstBanner(t *testing.T) {
	db := testutil.OpenSQLite(t)
	seed := testutil.NewSeeder(t, db)
	cat := seed.Category("Action")
	g := seed.Game(cat, "A", "d", "1")
	seed.Image(g, "regular", "/shot.png")
	first := seed.Image(g, "banner", "/banner1.png")
	seed.Image(g, "banner", "/banner2.png")

	repo := repository.NewImageRepo(db)
	banners, err := repo.BannersByGames(context.Background(), []int64{g})
	if err != nil {
		t.Fatalf("BannersByGames: %v", err)
	}
	if b := banners[g]; b.ID != first || b.Type != model.ImageBanner {
		t.Errorf("banner = %+v, want id %d", b, first)
	}
	all, err := repo.ListByGame(context.Background(), g)
	if err != nil || len(all) != 3 {
		t.Fatalf("ListByGame = %d images, %v", len(all), err)
	}
}

func TestReviewRepoListByGame(t *testing.T) {
	db := testutil.OpenSQLite(t)
	seed := testutil.NewSeeder(t, db)
	u := seed.User("ann", model.RoleCustomer)
	cat := seed.Category("Action")
	g := seed.Game(cat, "A", "d", "1")
	seed.Review(u, g, 3, "ok")
	seed.Review(u, g, 5, "")

	got, err := repository.NewReviewRepo(db).ListByGame(context.Background(), g)
	if err != nil {
		t.Fatalf("ListByGame: %v", err)
	}
	if len(got) != 2 || got[0].Rating != 3 || got[0].Content != "ok" || got[1].Rating != 5 {
		t.Errorf("reviews = %+v", got)
	}
}

func TestLibraryRepo(t *testing.T) {
	db := testutil.OpenSQLite(t)
	seed := testutil.NewSeeder(t, db)
	ann := seed.User("ann", model.RoleCustomer)
	bob := seed.User("bob", model.RoleCustomer)
	cat := seed.Category("Action")
	wished := seed.Game(cat, "Wished", "d", "1")
	carted := seed.Game(cat, "Carted", "d", "1")
	gift := seed.Game(cat, "Gift", "d", "1")
	digital := seed.Game(cat, "Digital", "d", "1")
	boxed := seed.Game(cat, "Boxed", "d", "1")

	seed.Wishlist(ann, wished)
	seed.Cart(ann, ann, carted)
	seed.Cart(ann, bob, gift)
	seed.OrderItem(ann, digital, false)
	seed.OrderItem(ann, boxed, true)

	repo := repository.NewLibraryRepo(db)
	ctx := context.Background()
	tests := []struct {
		name  string
		check func(context.Context, int64, int64) (bool, error)
		game  int64
		want  bool
	}{
		{"wishlisted", repo.IsWishlisted, wished, true},
		{"not wishlisted", repo.IsWishlisted, carted, false},
		{"own cart", repo.IsInCart, carted, true},
		{"gift cart", repo.IsInCart, gift, false},
		{"digital", repo.IsOwned, digital, true},
		{"physical", repo.IsOwned, boxed, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.check(ctx, ann, tc.game)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}

	cart, err := repo.CartGameIDs(ctx, ann)
	if err != nil || len(cart) != 1 || !cart[carted] {
		t.Errorf("CartGameIDs = %v, %v", cart, err)
	}
	owned, err := repo.OwnedGameIDs(ctx, ann)
	if err != nil || len(owned) != 1 || !owned[digital] {
		t.Errorf("OwnedGameIDs = %v, %v", owned, err)
	}
	bobWish, err := repo.WishlistedGameIDs(ctx, bob)
	if err != nil || len(bobWish) != 0 {
		t.Errorf("bob WishlistedGameIDs = %v, %v", bobWish, err)
	}
}

func TestUserRepoGetByID(t *testing.T) {
	db := testutil.OpenSQLite(t)
	id := testutil.NewSeeder(t, db).User("root", model.RoleAdmin)
	repo := repository.NewUserRepo(db)

	u, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if u.Username != "root" || u.Role != model.RoleAdmin {
		t.Errorf("user = %+v", u)
	}
	if _, err := repo.GetByID(context.Background(), id+1); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("missing user err = %v", err)
	}
}

func TestBatchReadsHandleLargeIDSets(t *testing.T) {
	db := testutil.OpenSQLite(t)
	seed := testutil.NewSeeder(t, db)
	cat := seed.Category("Action")
	g := seed.Game(cat, "A", "d", "20")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seed.Discount(g, "10", start, start.Add(time.Hour))
	banner := seed.Image(g, "banner", "/banner.png")

	// well past the per-statement variable limit of SQLite
	ids := make([]int64, 0, 40000)
	for id := int64(1_000_000); len(ids) < 39999; id++ {
		ids = append(ids, id)
	}
	ids = append(ids, g)

	discounts, err := repository.NewDiscountRepo(db).ListByGames(context.Background(), ids)
	if err != nil {
		t.Fatalf("ListByGames: %v", err)
	}
	if len(discounts) != 1 || len(discounts[g]) != 1 {
		t.Errorf("discounts = %+v", discounts)
	}
	banners, err := repository.NewImageRepo(db).BannersByGames(context.Background(), ids)
	if err != nil {
		t.Fatalf("BannersByGames: %v", err)
	}
	if len(banners) != 1 || banners[g].ID != banner {
		t.Errorf("banners = %+v", banners)
	}
}
