// Package testutil provides shared fixtures for tests: a SQLite
// database carrying the storefront schema, seed helpers and an
// in-memory store that satisfies the catalog service interfaces.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// schema mirrors the MySQL tables in SQLite syntax.
const schema = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	role TEXT NOT NULL DEFAULT 'CUSTOMER'
);
CREATE TABLE game_types (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);
CREATE TABLE games (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_type_id INTEGER NOT NULL REFERENCES game_types(id),
	name TEXT NOT NULL,
	developer TEXT NOT NULL,
	rating TEXT NOT NULL,
	regular_price NUMERIC NOT NULL DEFAULT 0,
	version INTEGER NOT NULL DEFAULT 1
);
CREATE TABLE game_discounts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id INTEGER NOT NULL REFERENCES games(id) ON DELETE CASCADE,
	discount_price NUMERIC NOT NULL,
	discount_start DATETIME NOT NULL,
	discount_finish DATETIME NOT NULL
);
CREATE TABLE game_images (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id INTEGER NOT NULL REFERENCES games(id) ON DELETE CASCADE,
	image_type TEXT NOT NULL,
	url TEXT NOT NULL DEFAULT ''
);
CREATE TABLE reviews (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	game_id INTEGER NOT NULL REFERENCES games(id) ON DELETE CASCADE,
	rating INTEGER NOT NULL,
	review_content TEXT
);
CREATE TABLE user_game_wishlists (
	user_id INTEGER NOT NULL REFERENCES users(id),
	game_id INTEGER NOT NULL REFERENCES games(id) ON DELETE CASCADE,
	PRIMARY KEY (user_id, game_id)
);
CREATE TABLE cart_games (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	cart_user_id INTEGER NOT NULL REFERENCES users(id),
	receiving_user_id INTEGER NOT NULL REFERENCES users(id),
	game_id INTEGER NOT NULL REFERENCES games(id) ON DELETE CASCADE,
	added_on DATETIME NOT NULL
);
CREATE TABLE order_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id INTEGER NOT NULL DEFAULT 0,
	owner_user_id INTEGER NOT NULL REFERENCES users(id),
	game_id INTEGER NOT NULL REFERENCES games(id) ON DELETE CASCADE,
	physically_owned BOOLEAN NOT NULL DEFAULT 0
);
`

// OpenSQLite returns a fresh file-backed SQLite database with the
// storefront schema.  It is closed when the test ends.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storefront.db")
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}

// Seeder inserts fixture rows and fails the test on error.
type Seeder struct {
	t  *testing.T
	db *sql.DB
}

// NewSeeder binds a seeder to db.
func NewSeeder(t *testing.T, db *sql.DB) *Seeder { return &Seeder{t: t, db: db} }

func (s *Seeder) insert(q string, args ...any) int64 {
	s.t.Helper()
	res, err := s.db.ExecContext(context.Background(), q, args...)
	if err != nil {
		s.t.Fatalf("seed %q: %v", q, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		s.t.Fatalf("seed last insert id: %v", err)
	}
	return id
}

func (s *Seeder) User(username, role string) int64 {
	s.t.Helper()
	return s.insert(`INSERT INTO users (username, role) VALUES (?, ?)`, username, role)
}

func (s *Seeder) Category(name string) int64 {
	s.t.Helper()
	return s.insert(`INSERT INTO game_types (name) VALUES (?)`, name)
}

func (s *Seeder) Game(categoryID int64, name, developer, price string) int64 {
	s.t.Helper()
	return s.insert(`INSERT INTO games (game_type_id, name, developer, rating, regular_price) VALUES (?, ?, ?, 'E', ?)`,
		categoryID, name, developer, decimal.RequireFromString(price))
}

func (s *Seeder) Discount(gameID int64, price string, start, finish time.Time) int64 {
	s.t.Helper()
	return s.insert(`INSERT INTO game_discounts (game_id, discount_price, discount_start, discount_finish) VALUES (?, ?, ?, ?)`,
		gameID, decimal.RequireFromString(price), start.UTC(), finish.UTC())
}

func (s *Seeder) Image(gameID int64, imageType, url string) int64 {
	s.t.Helper()
	return s.insert(`INSERT INTO game_images (game_id, image_type, url) VALUES (?, ?, ?)`, gameID, imageType, url)
}

func (s *Seeder) Review(userID, gameID int64, rating int, content string) int64 {
	s.t.Helper()
	return s.insert(`INSERT INTO reviews (user_id, game_id, rating, review_content) VALUES (?, ?, ?, ?)`,
		userID, gameID, rating, content)
}

func (s *Seeder) Wishlist(userID, gameID int64) {
	s.t.Helper()
	s.insert(`INSERT INTO user_game_wishlists (user_id, game_id) VALUES (?, ?)`, userID, gameID)
}

func (s *Seeder) Cart(cartUserID, receivingUserID, gameID int64) int64 {
	s.t.Helper()
	return s.insert(`INSERT INTO cart_games (cart_user_id, receiving_user_id, game_id, added_on) VALUES (?, ?, ?, ?)`,
		cartUserID, receivingUserID, gameID, time.Now().UTC())
}

func (s *Seeder) OrderItem(ownerID, gameID int64, physical bool) int64 {
	s.t.Helper()
	return s.insert(`INSERT INTO order_items (owner_user_id, game_id, physically_owned) VALUES (?, ?, ?)`,
		ownerID, gameID, physical)
}
