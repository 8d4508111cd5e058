package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/floralab/bloombot/internal/model/account"
	"github.com/floralab/bloombot/internal/model/catalog"
	"github.com/floralab/bloombot/internal/model/order"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := New(db)
	require.NoError(t, err)
	return s
}

func TestAddAndListFlowers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.AddFlower(ctx, catalog.Flower{
		Name: "Classic roses", Description: "Eleven red roses", Price: 2500,
		Category: "roses", Available: true,
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = s.AddFlower(ctx, catalog.Flower{Name: "Hidden", Price: 100, Available: false})
	require.NoError(t, err)

	flowers, err := s.Flowers(ctx, "")
	require.NoError(t, err)
	require.Len(t, flowers, 1, "unavailable flowers must be filtered out")
	assert.Equal(t, "Classic roses", flowers[0].Name)

	all, err := s.AllFlowers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFlowersByCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddFlower(ctx, catalog.Flower{Name: "Roses", Price: 2500, Category: "roses", Available: true})
	require.NoError(t, err)
	_, err = s.AddFlower(ctx, catalog.Flower{Name: "Tulips", Price: 1800, Category: "tulips", Available: true})
	require.NoError(t, err)

	roses, err := s.Flowers(ctx, "roses")
	require.NoError(t, err)
	require.Len(t, roses, 1)
	assert.Equal(t, "Roses", roses[0].Name)

	everything, err := s.Flowers(ctx, "all")
	require.NoError(t, err)
	assert.Len(t, everything, 2)
}

func TestFlowerNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Flower(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, f := range []catalog.Flower{
		{Name: "A", Price: 1, Category: "roses", Available: true},
		{Name: "B", Price: 1, Category: "roses", Available: true},
		{Name: "C", Price: 1, Category: "", Available: true},
	} {
		_, err := s.AddFlower(ctx, f)
		require.NoError(t, err)
	}

	counts, err := s.CategoryCounts(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 2)

	byCat := map[string]int{}
	for _, c := range counts {
		byCat[c.Category] = c.Count
	}
	assert.Equal(t, 2, byCat["roses"])
	assert.Equal(t, 1, byCat["other"], "uncategorized flowers land in other")
}

func TestEnsureUserUpserts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureUser(ctx, account.User{ID: 10, Username: "old", FirstName: "Ann"}))
	require.NoError(t, s.EnsureUser(ctx, account.User{ID: 10, Username: "new", FirstName: "Ann"}))

	users, err := s.RecentUsers(ctx, 5)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "new", users[0].Username)
}

func TestOrderLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	o := order.Order{
		ID: "ord-1", UserID: 10, ItemsJSON: `[{"color":"red"}]`, Total: 2400,
		Address: "Main st 1", Status: order.StatusPending, PaymentStatus: order.PaymentUnpaid,
	}
	require.NoError(t, s.CreateOrder(ctx, o))

	got, err := s.Order(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, got.Status)

	require.NoError(t, s.MarkPaid(ctx, "ord-1"))

	got, err = s.Order(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaid, got.Status)
	assert.Equal(t, order.PaymentPaid, got.PaymentStatus)

	assert.ErrorIs(t, s.MarkPaid(ctx, "missing"), ErrNotFound)
}

func TestOrdersFor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, o := range []order.Order{
		{ID: "a", UserID: 1, ItemsJSON: "[]", Total: 100, Status: order.StatusPending, PaymentStatus: order.PaymentUnpaid},
		{ID: "b", UserID: 1, ItemsJSON: "[]", Total: 200, Status: order.StatusPending, PaymentStatus: order.PaymentUnpaid},
		{ID: "c", UserID: 2, ItemsJSON: "[]", Total: 300, Status: order.StatusPending, PaymentStatus: order.PaymentUnpaid},
	} {
		require.NoError(t, s.CreateOrder(ctx, o))
	}

	mine, err := s.OrdersFor(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	recent, err := s.RecentOrders(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
}

func TestSeedFlowersIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SeedFlowers(ctx))
	seeded, err := s.AllFlowers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, seeded)

	require.NoError(t, s.SeedFlowers(ctx))
	again, err := s.AllFlowers(ctx)
	require.NoError(t, err)
	assert.Len(t, again, len(seeded), "seeding a populated catalog must be a no-op")
}
