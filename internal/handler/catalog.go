// Package handler exposes the HTTP handlers of the storefront: public
// catalog browsing, game details and the admin catalog forms.  View
// models are rendered as JSON.
package handler

import (
	"context"
	"errors"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/game-storefront/internal/middleware"
	"github.com/iliyamo/game-storefront/internal/model"
	"github.com/iliyamo/game-storefront/internal/repository"
	"github.com/iliyamo/game-storefront/internal/service"
)

// UserLookup resolves the user behind a verified token.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (model.User, error)
}

// Purger drops cached responses after catalog writes.
type Purger interface {
	Purge(ctx context.Context) error
}

// CatalogHandler serves the public and admin catalog routes.
type CatalogHandler struct {
	Catalog *service.CatalogService
	Users   UserLookup
	Cache   Purger // optional
}

// NewCatalogHandler constructs a CatalogHandler and panics if a
// required dependency is nil.
func NewCatalogHandler(svc *service.CatalogService, users UserLookup, cache Purger) *CatalogHandler {
	if svc == nil || users == nil {
		panic("nil dependency passed to NewCatalogHandler")
	}
	return &CatalogHandler{Catalog: svc, Users: users, Cache: cache}
}

// currentViewer turns the token claims set by the JWT middleware into a
// Viewer.  No token, or a token for a user that no longer exists, is
// the anonymous viewer.
func (h *CatalogHandler) currentViewer(c echo.Context) (model.Viewer, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return model.Anonymous(), nil
	}
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return model.Anonymous(), nil
	}
	if err != nil {
		return model.Viewer{}, err
	}
	return model.ViewerFor(u), nil
}

// purge clears the response cache; failures are logged only.
func (h *CatalogHandler) purge(c echo.Context) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Purge(c.Request().Context()); err != nil {
		c.Logger().Warnf("cache purge failed: %v", err)
	}
}

const listingPath = "/v1/games"

// listingURL builds path with the non-empty filter parameters.
func listingURL(path, price, category, search string) string {
	q := url.Values{}
	for k, v := range map[string]string{"price": price, "category": category, "search": search} {
		if v != "" {
			q.Set(k, v)
		}
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
