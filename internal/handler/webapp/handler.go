// Package webapp serves the read-only catalog API consumed by the embedded
// web application.
package webapp

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/floralab/bloombot/internal/model/catalog"
	"github.com/floralab/bloombot/internal/store"
	"github.com/floralab/bloombot/pkg/utils"
)

// Catalog is the slice of the store the web app reads.
type Catalog interface {
	Flowers(ctx context.Context, category string) ([]catalog.Flower, error)
	Flower(ctx context.Context, id int64) (catalog.Flower, error)
	CategoryCounts(ctx context.Context) ([]catalog.CategoryCount, error)
}

// Handler serves catalog reads.
type Handler struct {
	catalog Catalog
}

// New creates the web app handler.
func New(cat Catalog) *Handler {
	return &Handler{catalog: cat}
}

// RegisterRoutes mounts the catalog routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/flowers", h.listFlowers)
	r.Get("/flowers/{flowerID}", h.getFlower)
	r.Get("/categories", h.listCategories)
}

func (h *Handler) listFlowers(w http.ResponseWriter, r *http.Request) {
	flowers, err := h.catalog.Flowers(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		log.Printf("[webapp] list flowers: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load flowers")
		return
	}
	if flowers == nil {
		flowers = []catalog.Flower{}
	}
	utils.RespondJSON(w, http.StatusOK, flowers)
}

func (h *Handler) getFlower(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "flowerID"), 10, 64)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid flower id")
		return
	}

	flower, err := h.catalog.Flower(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "flower not found")
		return
	}
	if err != nil {
		log.Printf("[webapp] get flower %d: %v", id, err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load flower")
		return
	}
	utils.RespondJSON(w, http.StatusOK, flower)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	counts, err := h.catalog.CategoryCounts(r.Context())
	if err != nil {
		log.Printf("[webapp] list categories: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	if counts == nil {
		counts = []catalog.CategoryCount{}
	}
	utils.RespondJSON(w, http.StatusOK, counts)
}
