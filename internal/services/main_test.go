package services

import (
	"database/sql"
	"testing"

	"coffee_pos_backend/internal/models"
	"coffee_pos_backend/internal/repositories"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Service tests run against in-memory SQLite. The schema mirrors the
// production one; the SQL in the repositories is written to run on both
// engines.
const testSchema = `
CREATE TABLE users (
    user_id          INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name       TEXT NOT NULL,
    last_name        TEXT NOT NULL,
    phone_number     TEXT,
    email            TEXT NOT NULL UNIQUE,
    id_number        TEXT,
    hire_date        DATE,
    termination_date DATE,
    username         TEXT NOT NULL UNIQUE,
    password_hash    TEXT NOT NULL,
    role             TEXT NOT NULL,
    is_active        BOOLEAN NOT NULL DEFAULT 1,
    created_at       TIMESTAMP NOT NULL,
    updated_at       TIMESTAMP NOT NULL
);

CREATE TABLE items (
    item_id    INTEGER PRIMARY KEY AUTOINCREMENT,
    item_name  TEXT NOT NULL UNIQUE,
    price      NUMERIC NOT NULL CHECK (price >= 0),
    quantity   INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    is_active  BOOLEAN NOT NULL DEFAULT 1,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE TABLE sales (
    sale_id      INTEGER PRIMARY KEY AUTOINCREMENT,
    staff_id     INTEGER NOT NULL REFERENCES users(user_id),
    sale_date    DATE NOT NULL,
    total_amount NUMERIC NOT NULL DEFAULT 0,
    created_at   TIMESTAMP NOT NULL,
    updated_at   TIMESTAMP NOT NULL
);

CREATE TABLE sale_items (
    sale_item_id INTEGER PRIMARY KEY AUTOINCREMENT,
    sale_id      INTEGER NOT NULL REFERENCES sales(sale_id),
    item_id      INTEGER NOT NULL REFERENCES items(item_id),
    quantity     INTEGER NOT NULL CHECK (quantity > 0),
    subtotal     NUMERIC NOT NULL CHECK (subtotal >= 0),
    UNIQUE (sale_id, item_id)
);

CREATE TABLE ratings (
    rating_id    INTEGER PRIMARY KEY AUTOINCREMENT,
    staff_id     INTEGER NOT NULL REFERENCES users(user_id),
    rating_score REAL NOT NULL CHECK (rating_score >= 0 AND rating_score <= 5),
    rating_date  DATE NOT NULL
);
`

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// Each connection to :memory: gets its own database.
	db.SetMaxOpenConns(1)
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func createTestStaff(t *testing.T, db *sql.DB, username string, role models.Role) int64 {
	t.Helper()
	staffRepo := repositories.NewStaffRepository(db)
	user := &models.User{
		FirstName:    "Test",
		LastName:     "Staff",
		Email:        username + "@coffeepos.test",
		Username:     username,
		PasswordHash: "not-a-real-hash",
		Role:         role,
		IsActive:     true,
	}
	id, err := staffRepo.CreateUser(db, user)
	require.NoError(t, err)
	return id
}

func createTestItem(t *testing.T, svc ItemService, name, price string, quantity int) *models.Item {
	t.Helper()
	item, err := svc.CreateItem(CreateItemRequest{Name: name, Price: dec(price), Quantity: quantity})
	require.NoError(t, err)
	return item
}
