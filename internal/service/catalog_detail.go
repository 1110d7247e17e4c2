package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/game-storefront/internal/catalog"
	"github.com/iliyamo/game-storefront/internal/model"
	"github.com/iliyamo/game-storefront/internal/repository"
)

// DetailView is the game page model.
type DetailView struct {
	Game          model.Game      `json:"game"`
	Category      model.Category  `json:"category"`
	Reviews       []model.Review  `json:"reviews"`
	Image         *model.Image    `json:"image,omitempty"`
	Images        []model.Image   `json:"images"`
	Discount      *model.Discount `json:"discount,omitempty"`
	IsWishlisted  bool            `json:"isWishlisted"`
	IsInCart      bool            `json:"isInCart"`
	IsOwned       bool            `json:"isOwned"`
	AverageRating int             `json:"averageRating"`
}

// Detail loads one game with its reviews, images, active discount and
// the viewer's status flags.
func (s *CatalogService) Detail(ctx context.Context, viewer model.Viewer, id int64) (DetailView, error) {
	game, err := s.getGame(ctx, id)
	if err != nil {
		return DetailView{}, err
	}

	var (
		reviews   []model.Review
		images    []model.Image
		discounts []model.Discount
		status    catalog.Status
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		reviews, err = s.Reviews.ListByGame(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		images, err = s.Images.ListByGame(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		discounts, err = s.Discounts.ListByGame(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		status, err = s.flags(gctx, viewer, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return DetailView{}, fmt.Errorf("load game %d: %w", id, err)
	}

	view := DetailView{
		Game:          game,
		Category:      model.Category{ID: game.CategoryID, Name: game.CategoryName},
		Reviews:       reviews,
		Images:        []model.Image{},
		Discount:      catalog.ActiveDiscount(game, discounts, s.now()),
		IsWishlisted:  status.IsWishlisted,
		IsInCart:      status.IsInCart,
		IsOwned:       status.IsOwned,
		AverageRating: catalog.AverageRating(reviews),
	}
	if view.Reviews == nil {
		view.Reviews = []model.Review{}
	}
	for i := range images {
		switch images[i].Type {
		case model.ImageBanner:
			if view.Image == nil {
				view.Image = &images[i]
			}
		case model.ImageRegular:
			view.Images = append(view.Images, images[i])
		}
	}
	return view, nil
}

// Status computes the status bundle of game for viewer.
func (s *CatalogService) Status(ctx context.Context, viewer model.Viewer, game model.Game) (catalog.Status, error) {
	var (
		st        catalog.Status
		discounts []model.Discount
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st, err = s.flags(gctx, viewer, game.ID)
		return err
	})
	g.Go(func() (err error) {
		discounts, err = s.Discounts.ListByGame(gctx, game.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return catalog.Status{}, err
	}
	st.Discount = catalog.ActiveDiscount(game, discounts, s.now())
	return st, nil
}

// flags runs the three library checks concurrently.  All flags are
// false for an anonymous viewer and the library is not consulted.
func (s *CatalogService) flags(ctx context.Context, viewer model.Viewer, gameID int64) (catalog.Status, error) {
	var st catalog.Status
	u, ok := viewer.User()
	if !ok {
		return st, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.IsWishlisted, err = s.Library.IsWishlisted(gctx, u.ID, gameID)
		return err
	})
	g.Go(func() (err error) {
		st.IsInCart, err = s.Library.IsInCart(gctx, u.ID, gameID)
		return err
	})
	g.Go(func() (err error) {
		st.IsOwned, err = s.Library.IsOwned(gctx, u.ID, gameID)
		return err
	})
	if err := g.Wait(); err != nil {
		return catalog.Status{}, err
	}
	return st, nil
}

// getGame maps the store's not-found error to ErrNotFound.
func (s *CatalogService) getGame(ctx context.Context, id int64) (model.Game, error) {
	game, err := s.Games.GetByID(ctx, id)
	if errors.Is(err, repository.ErrGameNotFound) {
		return model.Game{}, ErrNotFound
	}
	if err != nil {
		return model.Game{}, fmt.Errorf("get game %d: %w", id, err)
	}
	return game, nil
}
