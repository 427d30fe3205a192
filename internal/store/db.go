package store

import (
	"database/sql"
	"errors"
	"log/slog"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("store: record not found")
	// ErrUsernameTaken is returned when an admin username would collide
	// with a different existing admin.
	ErrUsernameTaken = errors.New("store: username already taken")
)

type Store struct {
	DB *sql.DB
}

func NewStore(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

func (s *Store) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		price TEXT NOT NULL DEFAULT '0',
		image TEXT,
		availability TEXT NOT NULL DEFAULT 'available',
		size TEXT,
		color TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS custom_orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_type TEXT NOT NULL,
		material TEXT,
		color TEXT,
		occasion TEXT,
		size TEXT,
		notes TEXT,
		name TEXT NOT NULL,
		phone TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS admins (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		whatsapp_number TEXT NOT NULL
	);
	`
	_, err := s.DB.Exec(query)
	if err != nil {
		slog.Error("Error creating schema", "error", err)
		return err
	}
	return nil
}
