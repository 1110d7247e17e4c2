// Package service orchestrates the catalog flows: listing with
// filters and facets, game detail, and the admin create, edit and
// delete operations.  Stores are consumed through small interfaces so
// the flows can run against MySQL in production and an in-memory store
// in tests.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/game-storefront/internal/model"
	"github.com/iliyamo/game-storefront/internal/queue"
)

// ErrNotFound is returned when the requested game does not exist or
// the request names it inconsistently.
var ErrNotFound = errors.New("game not found")

// ValidationError carries the field errors of a rejected admin form.
type ValidationError struct {
	Fields []model.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// GameStore reads and writes games.
type GameStore interface {
	ListAll(ctx context.Context) ([]model.Game, error)
	GetByID(ctx context.Context, id int64) (model.Game, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, g *model.Game) error
	Update(ctx context.Context, g *model.Game) error
	Delete(ctx context.Context, id int64) error
}

// CategoryStore reads categories and their game counts.
type CategoryStore interface {
	ListAll(ctx context.Context) ([]model.Category, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ListWithCounts(ctx context.Context) ([]model.CategoryCount, error)
}

// DiscountStore reads discount windows.
type DiscountStore interface {
	ListByGame(ctx context.Context, gameID int64) ([]model.Discount, error)
	ListByGames(ctx context.Context, gameIDs []int64) (map[int64][]model.Discount, error)
}

// ImageStore reads game images.
type ImageStore interface {
	ListByGame(ctx context.Context, gameID int64) ([]model.Image, error)
	BannersByGames(ctx context.Context, gameIDs []int64) (map[int64]model.Image, error)
}

// ReviewStore reads reviews.
type ReviewStore interface {
	ListByGame(ctx context.Context, gameID int64) ([]model.Review, error)
}

// LibraryStore answers the per-viewer questions about games.
type LibraryStore interface {
	IsWishlisted(ctx context.Context, userID, gameID int64) (bool, error)
	IsInCart(ctx context.Context, userID, gameID int64) (bool, error)
	IsOwned(ctx context.Context, userID, gameID int64) (bool, error)
	WishlistedGameIDs(ctx context.Context, userID int64) (map[int64]bool, error)
	CartGameIDs(ctx context.Context, userID int64) (map[int64]bool, error)
	OwnedGameIDs(ctx context.Context, userID int64) (map[int64]bool, error)
}

// EventPublisher delivers catalog change events.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.CatalogEvent) error
}

// Stores groups the stores the catalog service reads and writes.
type Stores struct {
	Games      GameStore
	Categories CategoryStore
	Discounts  DiscountStore
	Images     ImageStore
	Reviews    ReviewStore
	Library    LibraryStore
}

// CatalogService implements the catalog flows on top of Stores.
type CatalogService struct {
	Stores
	// Events receives a message after each successful admin write.
	// Nil disables publishing.
	Events EventPublisher
	// Now is the clock used to decide which discounts are open.
	Now func() time.Time
}

// NewCatalogService wires a service with the wall clock.
func NewCatalogService(stores Stores, events EventPublisher) *CatalogService {
	return &CatalogService{Stores: stores, Events: events, Now: time.Now}
}

func (s *CatalogService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// publishTimeout caps how long an admin write waits on the broker.
const publishTimeout = 3 * time.Second

// publish sends the event before the request returns.  It outlives a
// cancelled request but is bounded by publishTimeout.  Failures are
// logged by the publisher and otherwise ignored.
func (s *CatalogService) publish(ctx context.Context, typ string, g model.Game, actor model.Viewer) {
	if s.Events == nil {
		return
	}
	ev := queue.NewCatalogEvent(typ, g.ID, g.Name, g.CategoryID, actor.ID(), s.now())
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	_ = s.Events.Publish(pctx, ev)
}
