package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/game-storefront/internal/model"
	"github.com/iliyamo/game-storefront/internal/queue"
	"github.com/iliyamo/game-storefront/internal/repository"
)

// GameInput is the bound admin form.  ID is ignored on create and Price
// is ignored on edit.  A non-zero Version makes an edit conditional on
// the stored version.
type GameInput struct {
	ID         int64
	CategoryID int64
	Name       string
	Developer  string
	Rating     string
	Price      decimal.Decimal
	Version    int64
}

// Game converts the input to a model with text fields trimmed.
func (in GameInput) Game() model.Game {
	return model.Game{
		ID:           in.ID,
		CategoryID:   in.CategoryID,
		Name:         strings.TrimSpace(in.Name),
		Developer:    strings.TrimSpace(in.Developer),
		Rating:       strings.TrimSpace(in.Rating),
		RegularPrice: in.Price,
		Version:      in.Version,
	}
}

// CategoryOption is an entry of the category select box.
type CategoryOption struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// FormView is the create/edit form model.
type FormView struct {
	Game       model.Game         `json:"game"`
	Categories []CategoryOption   `json:"categories"`
	Errors     []model.FieldError `json:"errors,omitempty"`
}

// DeleteView is the delete confirmation model.
type DeleteView struct {
	Game   model.Game    `json:"game"`
	Images []model.Image `json:"images"`
}

// CreateForm returns an empty form with every category as an option.
func (s *CatalogService) CreateForm(ctx context.Context) (FormView, error) {
	return s.FormFor(ctx, model.Game{}, nil)
}

// FormFor returns a form prefilled with g, the current category
// selected and errs attached.
func (s *CatalogService) FormFor(ctx context.Context, g model.Game, errs []model.FieldError) (FormView, error) {
	cats, err := s.Categories.ListAll(ctx)
	if err != nil {
		return FormView{}, fmt.Errorf("list categories: %w", err)
	}
	opts := make([]CategoryOption, 0, len(cats))
	for _, c := range cats {
		opts = append(opts, CategoryOption{ID: c.ID, Name: c.Name, Selected: c.ID == g.CategoryID})
	}
	return FormView{Game: g, Categories: opts, Errors: errs}, nil
}

// Create validates and stores a new game.  The input ID is discarded.
func (s *CatalogService) Create(ctx context.Context, in GameInput, actor model.Viewer) (model.Game, error) {
	g := in.Game()
	g.ID, g.Version = 0, 0
	if err := s.validate(ctx, g); err != nil {
		return model.Game{}, err
	}
	if err := s.Games.Create(ctx, &g); err != nil {
		return model.Game{}, fmt.Errorf("create game: %w", err)
	}
	s.publish(ctx, queue.GameCreated, g, actor)
	return g, nil
}

// EditForm returns the form for an existing game.
func (s *CatalogService) EditForm(ctx context.Context, id int64) (FormView, error) {
	g, err := s.getGame(ctx, id)
	if err != nil {
		return FormView{}, err
	}
	return s.FormFor(ctx, g, nil)
}

// Update applies an edit.  pathID must equal in.ID, otherwise
// ErrNotFound is returned and nothing is written.  The regular price is
// never changed.  When the store reports a version conflict the game
// is looked up again: gone means ErrNotFound, still present means the
// conflict is returned unrecovered.
func (s *CatalogService) Update(ctx context.Context, pathID int64, in GameInput, actor model.Viewer) (model.Game, error) {
	if pathID != in.ID {
		return model.Game{}, ErrNotFound
	}
	g := in.Game()
	g.RegularPrice = decimal.Zero
	if err := s.validate(ctx, g); err != nil {
		return model.Game{}, err
	}

	err := s.Games.Update(ctx, &g)
	if errors.Is(err, repository.ErrConcurrencyConflict) {
		ok, exErr := s.Games.Exists(ctx, g.ID)
		if exErr != nil {
			return model.Game{}, fmt.Errorf("recheck game %d: %w", g.ID, exErr)
		}
		if !ok {
			return model.Game{}, ErrNotFound
		}
		return model.Game{}, fmt.Errorf("update game %d: %w", g.ID, err)
	}
	if err != nil {
		return model.Game{}, fmt.Errorf("update game %d: %w", g.ID, err)
	}
	s.publish(ctx, queue.GameUpdated, g, actor)
	return g, nil
}

// DeleteConfirm loads a game with its category and images for the
// confirmation page.
func (s *CatalogService) DeleteConfirm(ctx context.Context, id int64) (DeleteView, error) {
	g, err := s.getGame(ctx, id)
	if err != nil {
		return DeleteView{}, err
	}
	images, err := s.Images.ListByGame(ctx, id)
	if err != nil {
		return DeleteView{}, fmt.Errorf("list images: %w", err)
	}
	if images == nil {
		images = []model.Image{}
	}
	return DeleteView{Game: g, Images: images}, nil
}

// Delete removes a game unconditionally.  Deleting an id that is
// already gone succeeds and publishes nothing.
func (s *CatalogService) Delete(ctx context.Context, id int64, actor model.Viewer) error {
	g, err := s.getGame(ctx, id)
	found := err == nil
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if err := s.Games.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete game %d: %w", id, err)
	}
	if found {
		s.publish(ctx, queue.GameDeleted, g, actor)
	}
	return nil
}

// validate runs the model rules and checks that the category exists.
func (s *CatalogService) validate(ctx context.Context, g model.Game) error {
	fields := model.ValidateGame(g)
	if g.CategoryID > 0 {
		ok, err := s.Categories.Exists(ctx, g.CategoryID)
		if err != nil {
			return fmt.Errorf("check category: %w", err)
		}
		if !ok {
			fields = append(fields, model.FieldError{Field: "categoryId", Message: "Category does not exist"})
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
