package webapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/floralab/bloombot/internal/model/catalog"
	"github.com/floralab/bloombot/internal/store"
)

type fakeCatalog struct {
	flowers []catalog.Flower
}

func (f *fakeCatalog) Flowers(_ context.Context, category string) ([]catalog.Flower, error) {
	if category == "" || category == "all" {
		return f.flowers, nil
	}
	var out []catalog.Flower
	for _, fl := range f.flowers {
		if fl.Category == category {
			out = append(out, fl)
		}
	}
	return out, nil
}

func (f *fakeCatalog) Flower(_ context.Context, id int64) (catalog.Flower, error) {
	for _, fl := range f.flowers {
		if fl.ID == id {
			return fl, nil
		}
	}
	return catalog.Flower{}, store.ErrNotFound
}

func (f *fakeCatalog) CategoryCounts(context.Context) ([]catalog.CategoryCount, error) {
	return []catalog.CategoryCount{{Category: "roses", Count: len(f.flowers)}}, nil
}

func setupRouter() *chi.Mux {
	cat := &fakeCatalog{flowers: []catalog.Flower{
		{ID: 1, Name: "Roses", Price: 2500, Category: "roses", Available: true},
		{ID: 2, Name: "Tulips", Price: 1800, Category: "tulips", Available: true},
	}}

	r := chi.NewRouter()
	r.Route("/api", func(api chi.Router) {
		New(cat).RegisterRoutes(api)
	})
	return r
}

func TestListFlowers(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/flowers", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var flowers []catalog.Flower
	if err := json.Unmarshal(resp.Body.Bytes(), &flowers); err != nil {
		t.Fatalf("decode flowers: %v", err)
	}
	if len(flowers) != 2 {
		t.Fatalf("expected 2 flowers, got %d", len(flowers))
	}
}

func TestListFlowersByCategory(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/flowers?category=roses", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var flowers []catalog.Flower
	if err := json.Unmarshal(resp.Body.Bytes(), &flowers); err != nil {
		t.Fatalf("decode flowers: %v", err)
	}
	if len(flowers) != 1 || flowers[0].Name != "Roses" {
		t.Fatalf("expected only roses, got %v", flowers)
	}
}

func TestGetFlower(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/flowers/2", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var flower catalog.Flower
	if err := json.Unmarshal(resp.Body.Bytes(), &flower); err != nil {
		t.Fatalf("decode flower: %v", err)
	}
	if flower.Name != "Tulips" {
		t.Fatalf("expected Tulips, got %s", flower.Name)
	}
}

func TestGetFlowerNotFound(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/flowers/404", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestGetFlowerInvalidID(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/flowers/abc", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestListCategories(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var counts []catalog.CategoryCount
	if err := json.Unmarshal(resp.Body.Bytes(), &counts); err != nil {
		t.Fatalf("decode categories: %v", err)
	}
	if len(counts) != 1 || counts[0].Category != "roses" {
		t.Fatalf("unexpected categories %v", counts)
	}
}
