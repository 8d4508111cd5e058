// Package store persists the catalog, customers and orders in SQLite.
//
// It expects an *sql.DB opened with a SQLite driver; the caller imports the
// driver, e.g.:
//
//	import _ "modernc.org/sqlite"
//
// Conversation state is deliberately not stored here: navigation history
// does not survive a restart.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/floralab/bloombot/internal/model/account"
	"github.com/floralab/bloombot/internal/model/catalog"
	"github.com/floralab/bloombot/internal/model/order"
)

// ErrNotFound reports a lookup for a row that does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps the shop database.
type Store struct {
	db *sql.DB
}

// New initializes the schema and returns a ready Store.
func New(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS flowers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price INTEGER NOT NULL,
			photo_url TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			available INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			username TEXT NOT NULL DEFAULT '',
			first_name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			items_json TEXT NOT NULL,
			total INTEGER NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			latitude REAL,
			longitude REAL,
			status TEXT NOT NULL,
			payment_status TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at);`,
	)
	return err
}

// AddFlower inserts a catalog item and returns its id.
func (s *Store) AddFlower(ctx context.Context, f catalog.Flower) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO flowers (name, description, price, photo_url, category, available)
		VALUES (?, ?, ?, ?, ?, ?)`,
		f.Name, f.Description, f.Price, f.PhotoURL, f.Category, f.Available,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Flowers lists available catalog items, optionally filtered by category.
// An empty or "all" category returns everything available.
func (s *Store) Flowers(ctx context.Context, category string) ([]catalog.Flower, error) {
	query := `
		SELECT id, name, description, price, photo_url, category, available, created_at
		FROM flowers WHERE available = 1`
	args := []any{}
	if category != "" && category != "all" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Flower
	for rows.Next() {
		var f catalog.Flower
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.Price, &f.PhotoURL, &f.Category, &f.Available, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// AllFlowers lists every catalog item, including unavailable ones. Used by
// the admin screens.
func (s *Store) AllFlowers(ctx context.Context) ([]catalog.Flower, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, price, photo_url, category, available, created_at
		FROM flowers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Flower
	for rows.Next() {
		var f catalog.Flower
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.Price, &f.PhotoURL, &f.Category, &f.Available, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Flower fetches one catalog item by id.
func (s *Store) Flower(ctx context.Context, id int64) (catalog.Flower, error) {
	var f catalog.Flower
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, photo_url, category, available, created_at
		FROM flowers WHERE id = ?`, id,
	).Scan(&f.ID, &f.Name, &f.Description, &f.Price, &f.PhotoURL, &f.Category, &f.Available, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Flower{}, ErrNotFound
	}
	return f, err
}

// CategoryCounts returns available flower counts grouped by category.
// Uncategorized items land in "other".
func (s *Store) CategoryCounts(ctx context.Context) ([]catalog.CategoryCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT CASE WHEN category = '' THEN 'other' ELSE category END AS cat, COUNT(*)
		FROM flowers WHERE available = 1
		GROUP BY cat ORDER BY cat`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.CategoryCount
	for rows.Next() {
		var c catalog.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// EnsureUser records a customer on first contact; later calls refresh the
// username and first name.
func (s *Store) EnsureUser(ctx context.Context, u account.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, first_name) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET username = excluded.username, first_name = excluded.first_name`,
		u.ID, u.Username, u.FirstName,
	)
	return err
}

// RecentUsers lists the most recently registered customers.
func (s *Store) RecentUsers(ctx context.Context, limit int) ([]account.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, first_name, created_at
		FROM users ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []account.User
	for rows.Next() {
		var u account.User
		if err := rows.Scan(&u.ID, &u.Username, &u.FirstName, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// CreateOrder persists a checked-out order.
func (s *Store) CreateOrder(ctx context.Context, o order.Order) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, items_json, total, address, latitude, longitude, status, payment_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.UserID, o.ItemsJSON, o.Total, o.Address, o.Latitude, o.Longitude, o.Status, o.PaymentStatus,
	)
	return err
}

// MarkPaid flips an order to paid on both status axes.
func (s *Store) MarkPaid(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE orders SET status = ?, payment_status = ? WHERE id = ?`,
		order.StatusPaid, order.PaymentPaid, id,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Order fetches one order by id.
func (s *Store) Order(ctx context.Context, id string) (order.Order, error) {
	var o order.Order
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, items_json, total, address, latitude, longitude, status, payment_status, created_at
		FROM orders WHERE id = ?`, id,
	).Scan(&o.ID, &o.UserID, &o.ItemsJSON, &o.Total, &o.Address, &o.Latitude, &o.Longitude, &o.Status, &o.PaymentStatus, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return order.Order{}, ErrNotFound
	}
	return o, err
}

// RecentOrders lists the newest orders across all customers.
func (s *Store) RecentOrders(ctx context.Context, limit int) ([]order.Order, error) {
	return s.queryOrders(ctx, `
		SELECT id, user_id, items_json, total, address, latitude, longitude, status, payment_status, created_at
		FROM orders ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
}

// OrdersFor lists one customer's orders, newest first.
func (s *Store) OrdersFor(ctx context.Context, userID int64, limit int) ([]order.Order, error) {
	return s.queryOrders(ctx, `
		SELECT id, user_id, items_json, total, address, latitude, longitude, status, payment_status, created_at
		FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
}

func (s *Store) queryOrders(ctx context.Context, query string, args ...any) ([]order.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []order.Order
	for rows.Next() {
		var o order.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.ItemsJSON, &o.Total, &o.Address, &o.Latitude, &o.Longitude, &o.Status, &o.PaymentStatus, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
