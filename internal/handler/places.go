package handler

import (
	"context"
	"net/http"
	"strconv"

	"placesbot/internal/model"

	"github.com/gin-gonic/gin"
)

// PlaceCatalog is the read-only place repository consumed by the catalog
// endpoints
type PlaceCatalog interface {
	FindByKeyword(ctx context.Context, query string, limit int) ([]model.Place, error)
	FindByType(ctx context.Context, placeType string, limit int) ([]model.Place, error)
	FindPopular(ctx context.Context, limit int) ([]model.Place, error)
	ListDistinctTypes(ctx context.Context) ([]string, error)
	GetPlace(ctx context.Context, id string) (*model.Place, error)
}

// PlacesHandler handles place catalog HTTP requests
type PlacesHandler struct {
	catalog      PlaceCatalog
	defaultLimit int
	maxLimit     int
}

// NewPlacesHandler creates a new places handler
func NewPlacesHandler(catalog PlaceCatalog, defaultLimit, maxLimit int) *PlacesHandler {
	return &PlacesHandler{
		catalog:      catalog,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// List handles GET /api/v1/places with optional q, type and limit params.
// Without q or type it returns the most popular places.
func (h *PlacesHandler) List(c *gin.Context) {
	limit := h.parseLimit(c.Query("limit"))

	var (
		places []model.Place
		err    error
	)
	switch {
	case c.Query("q") != "":
		places, err = h.catalog.FindByKeyword(c.Request.Context(), c.Query("q"), limit)
	case c.Query("type") != "":
		places, err = h.catalog.FindByType(c.Request.Context(), c.Query("type"), limit)
	default:
		places, err = h.catalog.FindPopular(c.Request.Context(), limit)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch places: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"places": places, "total": len(places)})
}

// Get handles GET /api/v1/places/:id
func (h *PlacesHandler) Get(c *gin.Context) {
	place, err := h.catalog.GetPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get place: " + err.Error()})
		return
	}
	if place == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Place not found"})
		return
	}

	c.JSON(http.StatusOK, place)
}

// Types handles GET /api/v1/types
func (h *PlacesHandler) Types(c *gin.Context) {
	types, err := h.catalog.ListDistinctTypes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list types: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"types": types})
}

func (h *PlacesHandler) parseLimit(raw string) int {
	if raw == "" {
		return h.defaultLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return h.defaultLimit
	}
	if limit > h.maxLimit {
		return h.maxLimit
	}
	return limit
}
