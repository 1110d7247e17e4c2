package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/game-storefront/internal/model"
	"github.com/iliyamo/game-storefront/internal/service"
)

// gameForm is the bound admin form.  Price is kept as text so form
// and JSON bodies parse the same way into a decimal.
type gameForm struct {
	ID         int64       `form:"id" json:"id"`
	CategoryID int64       `form:"categoryId" json:"categoryId"`
	Name       string      `form:"name" json:"name"`
	Developer  string      `form:"developer" json:"developer"`
	Rating     string      `form:"rating" json:"rating"`
	Price      json.Number `form:"price" json:"price"`
	Version    int64       `form:"version" json:"version"`
}

// input converts the form, reporting an unparsable price as a field
// error.
func (f gameForm) input() (service.GameInput, []model.FieldError) {
	in := service.GameInput{
		ID:         f.ID,
		CategoryID: f.CategoryID,
		Name:       f.Name,
		Developer:  f.Developer,
		Rating:     f.Rating,
		Version:    f.Version,
	}
	raw := strings.TrimSpace(string(f.Price))
	if raw == "" {
		return in, nil
	}
	p, err := decimal.NewFromString(raw)
	if err != nil {
		return in, []model.FieldError{{Field: "price", Message: "Price must be a number"}}
	}
	in.Price = p
	return in, nil
}

// New handles GET /v1/admin/games/new.
func (h *CatalogHandler) New(c echo.Context) error {
	form, err := h.Catalog.CreateForm(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("create form: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, form)
}

// Create handles POST /v1/admin/games.
func (h *CatalogHandler) Create(c echo.Context) error {
	var f gameForm
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	in, ferrs := f.input()
	if ferrs != nil {
		return h.redisplay(c, in.Game(), ferrs)
	}
	actor, err := h.currentViewer(c)
	if err != nil {
		return err
	}
	_, err = h.Catalog.Create(c.Request().Context(), in, actor)
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return h.redisplay(c, in.Game(), verr.Fields)
	}
	if err != nil {
		c.Logger().Errorf("create game: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create game"})
	}
	h.purge(c)
	return c.Redirect(http.StatusSeeOther, listingPath)
}

// Edit handles GET /v1/admin/games/:id/edit.
func (h *CatalogHandler) Edit(c echo.Context) error {
	id, ok := gameID(c)
	if !ok {
		return notFound(c)
	}
	form, err := h.Catalog.EditForm(c.Request().Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		c.Logger().Errorf("edit form %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, form)
}

// Update handles POST and PUT /v1/admin/games/:id.  A version conflict
// on a game that still exists is returned to echo's error handler.
func (h *CatalogHandler) Update(c echo.Context) error {
	id, ok := gameID(c)
	if !ok {
		return notFound(c)
	}
	var f gameForm
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	in, _ := f.input() // price is not editable
	actor, err := h.currentViewer(c)
	if err != nil {
		return err
	}
	_, err = h.Catalog.Update(c.Request().Context(), id, in, actor)
	var verr *service.ValidationError
	switch {
	case err == nil:
		h.purge(c)
		return c.Redirect(http.StatusSeeOther, listingPath)
	case errors.Is(err, service.ErrNotFound):
		return notFound(c)
	case errors.As(err, &verr):
		return h.redisplay(c, in.Game(), verr.Fields)
	default:
		c.Logger().Errorf("update game %d: %v", id, err)
		return err
	}
}

// DeleteConfirm handles GET /v1/admin/games/:id/delete.
func (h *CatalogHandler) DeleteConfirm(c echo.Context) error {
	id, ok := gameID(c)
	if !ok {
		return notFound(c)
	}
	view, err := h.Catalog.DeleteConfirm(c.Request().Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		c.Logger().Errorf("delete confirm %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, view)
}

// Delete handles POST /v1/admin/games/:id/delete and DELETE
// /v1/admin/games/:id.  Deleting a missing game still redirects.
func (h *CatalogHandler) Delete(c echo.Context) error {
	id, ok := gameID(c)
	if !ok {
		return notFound(c)
	}
	actor, err := h.currentViewer(c)
	if err != nil {
		return err
	}
	if err := h.Catalog.Delete(c.Request().Context(), id, actor); err != nil {
		c.Logger().Errorf("delete game %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	h.purge(c)
	return c.Redirect(http.StatusSeeOther, listingPath)
}

// redisplay answers 422 with the submitted game, its errors and the
// category options.
func (h *CatalogHandler) redisplay(c echo.Context, g model.Game, errs []model.FieldError) error {
	form, err := h.Catalog.FormFor(c.Request().Context(), g, errs)
	if err != nil {
		c.Logger().Errorf("form: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusUnprocessableEntity, form)
}
