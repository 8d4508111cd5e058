package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/floralab/bloombot/internal/config"
	"github.com/floralab/bloombot/internal/model/catalog"
)

type fakeCatalog struct {
	flowers []catalog.Flower
	err     error
}

func (f fakeCatalog) Flowers(context.Context, string) ([]catalog.Flower, error) {
	return f.flowers, f.err
}

func TestFallbackWithoutModel(t *testing.T) {
	cat := fakeCatalog{flowers: []catalog.Flower{
		{Name: "Classic roses", Description: "Eleven red roses", Price: 2500},
		{Name: "Tulip mix", Description: "Spring mix", Price: 1800},
	}}

	svc, err := NewService(context.Background(), cat, config.AIConfig{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if svc.ModelEnabled() {
		t.Fatal("no credentials must mean no model chain")
	}

	text, err := svc.Recommend(context.Background(), "birthday", "3000")
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if !strings.Contains(text, "birthday") || !strings.Contains(text, "Classic roses") {
		t.Fatalf("fallback must mention the occasion and the lead bouquet, got %q", text)
	}
	if !strings.Contains(text, "Tulip mix") {
		t.Fatalf("fallback must list alternatives, got %q", text)
	}
}

func TestFallbackWithEmptyCatalog(t *testing.T) {
	svc, err := NewService(context.Background(), fakeCatalog{}, config.AIConfig{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	text, err := svc.Recommend(context.Background(), "", "")
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if !strings.Contains(text, "restocked") {
		t.Fatalf("expected the restock notice, got %q", text)
	}
}

func TestCatalogErrorIsSurfaced(t *testing.T) {
	cat := fakeCatalog{err: errors.New("db down")}
	svc, err := NewService(context.Background(), cat, config.AIConfig{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.Recommend(context.Background(), "birthday", ""); err == nil {
		t.Fatal("a catalog failure must surface as an error")
	}
}
