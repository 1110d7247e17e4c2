package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/game-storefront/internal/catalog"
	"github.com/iliyamo/game-storefront/internal/service"
)

// Index handles GET /v1/games?price=&category=&search=.  An unknown
// price token redirects to the same path without it.
func (h *CatalogHandler) Index(c echo.Context) error {
	q := service.ListQuery{
		Price:    c.QueryParam("price"),
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
	}
	if _, err := catalog.ParsePriceFilter(q.Price); err != nil {
		return c.Redirect(http.StatusFound, listingURL(c.Request().URL.Path, "", q.Category, q.Search))
	}
	viewer, err := h.currentViewer(c)
	if err != nil {
		c.Logger().Errorf("resolve viewer: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	view, err := h.Catalog.List(c.Request().Context(), viewer, q)
	if err != nil {
		c.Logger().Errorf("list games: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, view)
}

// filterForm is the body of POST /v1/games/filter.
type filterForm struct {
	Price    string `form:"price" json:"price" query:"price"`
	Category string `form:"category" json:"category" query:"category"`
	Search   string `form:"search" json:"search" query:"search"`
}

// Filter handles POST /v1/games/filter by redirecting to the listing
// with the submitted parameters.  They are read from the query string
// and then the body, which wins when both carry a field.
func (h *CatalogHandler) Filter(c echo.Context) error {
	var f filterForm
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid query"})
	}
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	return c.Redirect(http.StatusSeeOther, listingURL(listingPath, f.Price, f.Category, f.Search))
}

// Details handles GET /v1/games/:id.
func (h *CatalogHandler) Details(c echo.Context) error {
	id, ok := gameID(c)
	if !ok {
		return notFound(c)
	}
	viewer, err := h.currentViewer(c)
	if err != nil {
		c.Logger().Errorf("resolve viewer: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	view, err := h.Catalog.Detail(c.Request().Context(), viewer, id)
	if errors.Is(err, service.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		c.Logger().Errorf("game %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, view)
}

// gameID parses the :id path parameter.  Missing or non-numeric ids
// are reported as not ok.
func gameID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

func notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": "game not found"})
}
