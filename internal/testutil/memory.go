package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/iliyamo/game-storefront/internal/model"
	"github.com/iliyamo/game-storefront/internal/repository"
)

// Memory is an in-process store with the same observable behaviour as
// the SQL repositories.  Its views (Games, Categories, ...) satisfy the
// store interfaces consumed by the catalog service.
type Memory struct {
	mu     sync.RWMutex
	nextID int64

	categories []model.Category
	games      []model.Game
	discounts  []model.Discount
	images     []model.Image
	reviews    []model.Review
	wishlist   []model.WishlistEntry
	cart       []model.CartEntry
	orders     []model.OrderItem
	users      []model.User

	// Writes counts Create, Update and Delete calls that changed data.
	Writes int
	// LibraryCalls counts every library lookup.
	LibraryCalls int
}

// NewMemory returns an empty store.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) id() int64 {
	m.nextID++
	return m.nextID
}

// AddUser seeds a user.
func (m *Memory) AddUser(username, role string) model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := model.User{ID: m.id(), Username: username, Role: role}
	m.users = append(m.users, u)
	return u
}

// AddCategory seeds a category.
func (m *Memory) AddCategory(name string) model.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := model.Category{ID: m.id(), Name: name}
	m.categories = append(m.categories, c)
	return c
}

// AddGame seeds a game, assigning its ID and version 1.
func (m *Memory) AddGame(g model.Game) model.Game {
	m.mu.Lock()
	defer m.mu.Unlock()
	g.ID = m.id()
	g.Version = 1
	g.CategoryName = ""
	m.games = append(m.games, g)
	return m.withCategory(g)
}

// AddDiscount seeds a discount.
func (m *Memory) AddDiscount(d model.Discount) model.Discount {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = m.id()
	m.discounts = append(m.discounts, d)
	return d
}

// AddImage seeds an image.
func (m *Memory) AddImage(gameID int64, t model.ImageType, url string) model.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	img := model.Image{ID: m.id(), GameID: gameID, Type: t, URL: url}
	m.images = append(m.images, img)
	return img
}

// AddReview seeds a review.
func (m *Memory) AddReview(userID, gameID int64, rating int, content string) model.Review {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := model.Review{ID: m.id(), UserID: userID, GameID: gameID, Rating: rating, Content: content}
	m.reviews = append(m.reviews, r)
	return r
}

// AddWishlist marks gameID as wishlisted by userID.
func (m *Memory) AddWishlist(userID, gameID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wishlist = append(m.wishlist, model.WishlistEntry{UserID: userID, GameID: gameID})
}

// AddCart puts gameID in cartUserID's cart for receivingUserID.
func (m *Memory) AddCart(cartUserID, receivingUserID, gameID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = append(m.cart, model.CartEntry{ID: m.id(), CartUserID: cartUserID, ReceivingUserID: receivingUserID, GameID: gameID})
}

// AddOrderItem records a purchase of gameID by ownerID.
func (m *Memory) AddOrderItem(ownerID, gameID int64, physical bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, model.OrderItem{ID: m.id(), OwnerUserID: ownerID, GameID: gameID, PhysicallyOwned: physical})
}

// Game returns the stored copy of a game, if present.
func (m *Memory) Game(id int64) (model.Game, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, g := range m.games {
		if g.ID == id {
			return m.withCategory(g), true
		}
	}
	return model.Game{}, false
}

// withCategory fills CategoryName; callers hold the lock.
func (m *Memory) withCategory(g model.Game) model.Game {
	for _, c := range m.categories {
		if c.ID == g.CategoryID {
			g.CategoryName = c.Name
			return g
		}
	}
	return g
}

func (m *Memory) gameIndex(id int64) int {
	for i, g := range m.games {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// Views over the store.
type (
	MemGames      struct{ m *Memory }
	MemCategories struct{ m *Memory }
	MemDiscounts  struct{ m *Memory }
	MemImages     struct{ m *Memory }
	MemReviews    struct{ m *Memory }
	MemLibrary    struct{ m *Memory }
	MemUsers      struct{ m *Memory }
)

func (m *Memory) Games() MemGames           { return MemGames{m} }
func (m *Memory) Categories() MemCategories { return MemCategories{m} }
func (m *Memory) Discounts() MemDiscounts   { return MemDiscounts{m} }
func (m *Memory) Images() MemImages         { return MemImages{m} }
func (m *Memory) Reviews() MemReviews       { return MemReviews{m} }
func (m *Memory) Library() MemLibrary       { return MemLibrary{m} }
func (m *Memory) Users() MemUsers           { return MemUsers{m} }

func (s MemGames) ListAll(ctx context.Context) ([]model.Game, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := make([]model.Game, 0, len(s.m.games))
	for _, g := range s.m.games {
		out = append(out, s.m.withCategory(g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s MemGames) GetByID(ctx context.Context, id int64) (model.Game, error) {
	g, ok := s.m.Game(id)
	if !ok {
		return model.Game{}, repository.ErrGameNotFound
	}
	return g, nil
}

func (s MemGames) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := s.m.Game(id)
	return ok, nil
}

func (s MemGames) Create(ctx context.Context, g *model.Game) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	g.ID = s.m.id()
	g.Version = 1
	stored := *g
	stored.CategoryName = ""
	s.m.games = append(s.m.games, stored)
	s.m.Writes++
	return nil
}

func (s MemGames) Update(ctx context.Context, g *model.Game) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	i := s.m.gameIndex(g.ID)
	if i < 0 || (g.Version > 0 && s.m.games[i].Version != g.Version) {
		return repository.ErrConcurrencyConflict
	}
	cur := &s.m.games[i]
	cur.CategoryID = g.CategoryID
	cur.Name = g.Name
	cur.Developer = g.Developer
	cur.Rating = g.Rating
	cur.Version++
	g.Version = cur.Version
	s.m.Writes++
	return nil
}

func (s MemGames) Delete(ctx context.Context, id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	i := s.m.gameIndex(id)
	if i < 0 {
		return nil
	}
	s.m.games = append(s.m.games[:i:i], s.m.games[i+1:]...)
	s.m.discounts = dropByGame(s.m.discounts, id, func(d model.Discount) int64 { return d.GameID })
	s.m.images = dropByGame(s.m.images, id, func(x model.Image) int64 { return x.GameID })
	s.m.reviews = dropByGame(s.m.reviews, id, func(r model.Review) int64 { return r.GameID })
	s.m.wishlist = dropByGame(s.m.wishlist, id, func(w model.WishlistEntry) int64 { return w.GameID })
	s.m.cart = dropByGame(s.m.cart, id, func(c model.CartEntry) int64 { return c.GameID })
	s.m.orders = dropByGame(s.m.orders, id, func(o model.OrderItem) int64 { return o.GameID })
	s.m.Writes++
	return nil
}

// dropByGame mimics ON DELETE CASCADE.
func dropByGame[T any](rows []T, gameID int64, key func(T) int64) []T {
	out := rows[:0:0]
	for _, r := range rows {
		if key(r) != gameID {
			out = append(out, r)
		}
	}
	return out
}

// RemoveGame deletes a game behind the service's back.
func (m *Memory) RemoveGame(id int64) {
	_ = m.Games().Delete(context.Background(), id)
	m.mu.Lock()
	m.Writes--
	m.mu.Unlock()
}

// BumpVersion simulates another writer updating the game.
func (m *Memory) BumpVersion(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.gameIndex(id); i >= 0 {
		m.games[i].Version++
	}
}

func (s MemCategories) ListAll(ctx context.Context) ([]model.Category, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := append([]model.Category(nil), s.m.categories...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s MemCategories) Exists(ctx context.Context, id int64) (bool, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, c := range s.m.categories {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s MemCategories) ListWithCounts(ctx context.Context) ([]model.CategoryCount, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var out []model.CategoryCount
	for _, c := range s.m.categories {
		n := 0
		for _, g := range s.m.games {
			if g.CategoryID == c.ID {
				n++
			}
		}
		if n > 0 {
			out = append(out, model.CategoryCount{Category: c, Games: n})
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.Compare(out[i].Name, out[j].Name) < 0 })
	return out, nil
}

func (s MemDiscounts) ListByGame(ctx context.Context, gameID int64) ([]model.Discount, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var out []model.Discount
	for _, d := range s.m.discounts {
		if d.GameID == gameID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s MemDiscounts) ListByGames(ctx context.Context, gameIDs []int64) (map[int64][]model.Discount, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	want := idSet(gameIDs)
	out := make(map[int64][]model.Discount)
	for _, d := range s.m.discounts {
		if want[d.GameID] {
			out[d.GameID] = append(out[d.GameID], d)
		}
	}
	return out, nil
}

func (s MemImages) ListByGame(ctx context.Context, gameID int64) ([]model.Image, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var out []model.Image
	for _, img := range s.m.images {
		if img.GameID == gameID {
			out = append(out, img)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s MemImages) BannersByGames(ctx context.Context, gameIDs []int64) (map[int64]model.Image, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	want := idSet(gameIDs)
	out := make(map[int64]model.Image)
	for _, img := range s.m.images {
		if img.Type != model.ImageBanner || !want[img.GameID] {
			continue
		}
		if cur, ok := out[img.GameID]; !ok || img.ID < cur.ID {
			out[img.GameID] = img
		}
	}
	return out, nil
}

func (s MemReviews) ListByGame(ctx context.Context, gameID int64) ([]model.Review, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	var out []model.Review
	for _, r := range s.m.reviews {
		if r.GameID == gameID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s MemLibrary) count() {
	s.m.mu.Lock()
	s.m.LibraryCalls++
	s.m.mu.Unlock()
}

func (s MemLibrary) IsWishlisted(ctx context.Context, userID, gameID int64) (bool, error) {
	ids, err := s.WishlistedGameIDs(ctx, userID)
	return ids[gameID], err
}

func (s MemLibrary) IsInCart(ctx context.Context, userID, gameID int64) (bool, error) {
	ids, err := s.CartGameIDs(ctx, userID)
	return ids[gameID], err
}

func (s MemLibrary) IsOwned(ctx context.Context, userID, gameID int64) (bool, error) {
	ids, err := s.OwnedGameIDs(ctx, userID)
	return ids[gameID], err
}

func (s MemLibrary) WishlistedGameIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	s.count()
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := make(map[int64]bool)
	for _, w := range s.m.wishlist {
		if w.UserID == userID {
			out[w.GameID] = true
		}
	}
	return out, nil
}

func (s MemLibrary) CartGameIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	s.count()
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := make(map[int64]bool)
	for _, c := range s.m.cart {
		if c.ForSelf(userID) {
			out[c.GameID] = true
		}
	}
	return out, nil
}

func (s MemLibrary) OwnedGameIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	s.count()
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := make(map[int64]bool)
	for _, o := range s.m.orders {
		if o.OwnerUserID == userID && !o.PhysicallyOwned {
			out[o.GameID] = true
		}
	}
	return out, nil
}

func (s MemUsers) GetByID(ctx context.Context, id int64) (model.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, u := range s.m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func idSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
