package screens

import (
	"context"

	"github.com/floralab/bloombot/internal/model/account"
	"github.com/floralab/bloombot/internal/model/catalog"
	"github.com/floralab/bloombot/internal/model/order"
)

// Catalog is the flower storage renderers read from.
type Catalog interface {
	Flowers(ctx context.Context, category string) ([]catalog.Flower, error)
	AllFlowers(ctx context.Context) ([]catalog.Flower, error)
	CategoryCounts(ctx context.Context) ([]catalog.CategoryCount, error)
}

// Orders is the order storage renderers read from.
type Orders interface {
	RecentOrders(ctx context.Context, limit int) ([]order.Order, error)
	OrdersFor(ctx context.Context, userID int64, limit int) ([]order.Order, error)
}

// Users is the customer registry the admin screens read from.
type Users interface {
	RecentUsers(ctx context.Context, limit int) ([]account.User, error)
}

// Recommender produces bouquet suggestions.
type Recommender interface {
	Recommend(ctx context.Context, occasion, budget string) (string, error)
}

// Env bundles the external collaborators available to renderers. Calls into
// it are synchronous and complete before the renderer returns; a failure
// degrades the render, never the session.
type Env struct {
	Catalog     Catalog
	Orders      Orders
	Users       Users
	Recommender Recommender
	WebAppURL   string
}
