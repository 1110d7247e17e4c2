package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/game-storefront/internal/catalog"
	"github.com/iliyamo/game-storefront/internal/model"
)

// ListQuery carries the raw listing parameters from the query string.
type ListQuery struct {
	Price    string
	Category string
	Search   string
}

// GameCard is one game in the listing with its viewer status and
// banner image.
type GameCard struct {
	model.Game
	catalog.Status
	Banner *model.Image `json:"banner,omitempty"`
}

// IndexView is the listing page model.
type IndexView struct {
	FilterPrice    string                `json:"filterPrice"`
	FilterCategory string                `json:"filterCategory"`
	FilterSearch   string                `json:"filterSearch"`
	FilterGroups   []catalog.FilterGroup `json:"filterGroups"`
	Games          []GameCard            `json:"games"`
}

// library is the viewer's wishlist, own-cart and owned game sets.
type library struct {
	wishlisted, inCart, owned map[int64]bool
}

// List builds the listing for viewer.  A non-empty price token outside
// the known buckets returns catalog.ErrInvalidPriceFilter before any
// store access.
func (s *CatalogService) List(ctx context.Context, viewer model.Viewer, q ListQuery) (IndexView, error) {
	price, err := catalog.ParsePriceFilter(q.Price)
	if err != nil {
		return IndexView{}, err
	}

	var (
		games  []model.Game
		counts []model.CategoryCount
		lib    library
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		games, err = s.Games.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		counts, err = s.Categories.ListWithCounts(gctx)
		return err
	})
	s.loadLibrary(gctx, g, viewer, &lib)
	if err := g.Wait(); err != nil {
		return IndexView{}, fmt.Errorf("load catalog: %w", err)
	}

	ids := make([]int64, len(games))
	for i, gm := range games {
		ids[i] = gm.ID
	}
	var (
		discounts map[int64][]model.Discount
		banners   map[int64]model.Image
	)
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		discounts, err = s.Discounts.ListByGames(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		banners, err = s.Images.BannersByGames(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return IndexView{}, fmt.Errorf("load discounts and banners: %w", err)
	}

	now := s.now()
	filter := catalog.Filter{Price: price, Search: q.Search, Category: q.Category}
	filtered := catalog.Apply(games, filter, discounts, now)

	cards := make([]GameCard, 0, len(filtered))
	for _, gm := range filtered {
		card := GameCard{
			Game: gm,
			Status: catalog.Status{
				IsWishlisted: lib.wishlisted[gm.ID],
				IsInCart:     lib.inCart[gm.ID],
				IsOwned:      lib.owned[gm.ID],
				Discount:     catalog.ActiveDiscount(gm, discounts[gm.ID], now),
			},
		}
		if b, ok := banners[gm.ID]; ok {
			card.Banner = &b
		}
		cards = append(cards, card)
	}

	return IndexView{
		FilterPrice:    price.String(),
		FilterCategory: strings.TrimSpace(q.Category),
		FilterSearch:   strings.TrimSpace(q.Search),
		FilterGroups: []catalog.FilterGroup{
			catalog.PriceFacet(price),
			catalog.CategoryFacet(counts, q.Category),
		},
		Games: cards,
	}, nil
}

// loadLibrary schedules the viewer's library reads on g.  Nothing is
// read for an anonymous viewer and the sets stay nil.
func (s *CatalogService) loadLibrary(ctx context.Context, g *errgroup.Group, viewer model.Viewer, lib *library) {
	u, ok := viewer.User()
	if !ok {
		return
	}
	g.Go(func() (err error) {
		lib.wishlisted, err = s.Library.WishlistedGameIDs(ctx, u.ID)
		return err
	})
	g.Go(func() (err error) {
		lib.inCart, err = s.Library.CartGameIDs(ctx, u.ID)
		return err
	})
	g.Go(func() (err error) {
		lib.owned, err = s.Library.OwnedGameIDs(ctx, u.ID)
		return err
	})
}
