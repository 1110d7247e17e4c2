package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/game-storefront/internal/model"
	"github.com/iliyamo/game-storefront/internal/repository"
	"github.com/iliyamo/game-storefront/internal/testutil"
)

func TestGameRepoListAllJoinsCategory(t *testing.T) {
	db := testutil.OpenSQLite(t)
	seed := testutil.NewSeeder(t, db)
	action := seed.Category("Action")
	puzzle := seed.Category("Puzzle")
	g1 := seed.Game(action, "Zelda", "Nintendo", "29.99")
	g2 := seed.Game(puzzle, "Tetris", "Pajitnov", "0")

	games, err := repository.NewGameRepo(db).ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("got %d games, want 2", len(games))
	}
	if games[0].ID != g1 || games[0].CategoryName != "Action" {
		t.Errorf("first game = %+v", games[0])
	}
	if !games[0].RegularPrice.Equal(decimal.RequireFromString("29.99")) {
		t.Errorf("price = %s, want 29.99", games[0].RegularPrice)
	}
	if games[1].ID != g2 || !games[1].RegularPrice.IsZero() {
		t.Errorf("second game = %+v", games[1])
	}
	if games[0].Version != 1 {
		t.Errorf("version = %d, want 1", games[0].Version)
	}
}

func TestGameRepoGetByIDNotFound(t *testing.T) {
	db := testutil.OpenSQLite(t)
	_, err := repository.NewGameRepo(db).GetByID(context.Background(), 42)
	if !errors.Is(err, repository.ErrGameNotFound) {
		t.Fatalf("err = %v, want ErrGameNotFound", err)
	}
}

func TestGameRepoCreateIgnoresCallerID(t *testing.T) {
	db := testutil.OpenSQLite(t)
	seed := testutil.NewSeeder(t, db)
	cat := seed.Category("Action")
	repo := repository.NewGameRepo(db)
	ctx := context.Background()

	g := model.Game{ID: 999, CategoryID: cat, Name: "Hades", Developer: "Supergiant", Rating: "T",
		RegularPrice: decimal.RequireFromString("24.99")}
	if err := repo.Create(ctx, &g); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID == 999 || g.ID == 0 {
		t.Fatalf("ID = %d, want generated key", g.ID)
	}
	got, err := repo.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Hades" || got.CategoryName != "Action" || got.Version != 1 {
		t.Errorf("stored game = %+v", got)
	}
}

func TestGameRepoUpdateKeepsPriceAndBumpsVersion(t *testing.T) {
	db := testutil.OpenSQLite(t)
	seed := testutil.NewSeeder(t, db)
	action := seed.Category("Action")
	rpg := seed.Category("RPG")
	id := seed.Game(action, "Zelda", "Nintendo", "29.99")
	repo := repository.NewGameRepo(db)
	ctx := context.Background()

	g := model.Game{ID: id, CategoryID: rpg, Name: "Zelda II", Developer: "Nintendo", Rating: "E",
		RegularPrice: decimal.RequireFromString("1.00"), Version: 1}
	if err := repo.Update(ctx, &g); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if g.Version != 2 {
		t.Errorf("version = %d, want 2", g.Version)
	}
	got, _ := repo.GetByID(ctx, id)
	if got.Name != "Zelda II" || got.CategoryName != "RPG" {
		t.Errorf("stored game = %+v", got)
	}
	if !got.RegularPrice.Equal(decimal.RequireFromString("29.99")) {
		t.Errorf("price changed to %s", got.RegularPrice)
	}
}

func TestGameRepoUpdateConflicts(t *testing.T) {
	db := testutil.OpenSQLite(t)
	seed := testutil.NewSeeder(t, db)
	cat := seed.Category("Action")
	id := seed.Game(cat, "Zelda", "Nintendo", "29.99")
	repo := repository.NewGameRepo(db)
	ctx := context.Background()

	stale := model.Game{ID: id, CategoryID: cat, Name: "Stale", Developer: "x", Rating: "E", Version: 7}
	if err := repo.Update(ctx, &stale); !errors.Is(err, repository.ErrConcurrencyConflict) {
		t.Fatalf("stale version err = %v, want ErrConcurrencyConflict", err)
	}
	missing := model.Game{ID: id + 100, CategoryID: cat, Name: "Gone", Developer: "x", Rating: "E"}
	if err := repo.Update(ctx, &missing); !errors.Is(err, repository.ErrConcurrencyConflict) {
		t.Fatalf("missing row err = %v, want ErrConcurrencyConflict", err)
	}
	unversioned := model.Game{ID: id, CategoryID: cat, Name: "Any", Developer: "x", Rating: "E"}
	if err := repo.Update(ctx, &unversioned); err != nil {
		t.Fatalf("unversioned update: %v", err)
	}
}

func TestGameRepoDeleteCascadesAndIsIdempotent(t *testing.T) {
	db := testutil.OpenSQLite(t)
	seed := testutil.NewSeeder(t, db)
	user := seed.User("ann", model.RoleCustomer)
	cat := seed.Category("Action")
	id := seed.Game(cat, "Zelda", "Nintendo", "29.99")
	seed.Review(user, id, 5, "great")
	seed.Image(id, "banner", "/b.png")
	seed.Wishlist(user, id)
	repo := repository.NewGameRepo(db)
	ctx := context.Background()

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	ok, err := repo.Exists(ctx, id)
	if err != nil || ok {
		t.Fatalf("Exists after delete = %v, %v", ok, err)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(1) FROM reviews WHERE game_id = ?`, id).Scan(&n); err != nil || n != 0 {
		t.Errorf("reviews left = %d (%v)", n, err)
	}
	if err := repo.Delete(ctx, id); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}
