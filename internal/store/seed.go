package store

import (
	"context"

	"github.com/floralab/bloombot/internal/model/catalog"
)

// SeedFlowers inserts the starter catalog on an empty database. A no-op
// once any flower exists.
func (s *Store) SeedFlowers(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM flowers`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []catalog.Flower{
		{Name: "Classic roses", Description: "Fifteen red roses", Price: 2500, Category: "roses", Available: true},
		{Name: "Tulip mix", Description: "Twenty-five tulips in mixed colors", Price: 1800, Category: "tulips", Available: true},
		{Name: "Tender peonies", Description: "Seven pink peonies", Price: 3200, Category: "peonies", Available: true},
		{Name: "Birthday bouquet", Description: "A bright mix of roses, chrysanthemums and alstroemerias", Price: 2000, Category: "mixed", Available: true},
		{Name: "White chrysanthemums", Description: "A single-variety chrysanthemum bouquet", Price: 1500, Category: "chrysanthemums", Available: true},
	}
	for _, f := range samples {
		if _, err := s.AddFlower(ctx, f); err != nil {
			return err
		}
	}
	return nil
}
