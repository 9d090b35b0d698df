package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when no document exists under the requested name.
var ErrNotFound = errors.New("document not found")

// Store is a named-document store over SQL. Each document is a whole payload
// read and written as one unit; there is no optimistic-concurrency check,
// which is an accepted limitation for a single-user local store.
type Store struct {
	conn   *sql.DB
	dbType string
}

type Config struct {
	Type       string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SQLitePath string
}

func Open(config Config) (*Store, error) {
	var conn *sql.DB
	var err error

	switch config.Type {
	case "sqlite":
		conn, err = sql.Open("sqlite3", config.SQLitePath)
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			config.Host, config.Port, config.User, config.Password, config.Name)
		conn, err = sql.Open("pgx", dsn)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", config.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &Store{conn: conn, dbType: config.Type}

	if err := store.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

func (s *Store) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS documents (
		name TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	`

	_, err := s.conn.Exec(query)
	return err
}

// Get returns the payload stored under name.
func (s *Store) Get(ctx context.Context, name string) (string, error) {
	var payload string
	err := s.conn.QueryRowContext(ctx,
		"SELECT payload FROM documents WHERE name = $1", name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get document %s: %w", name, err)
	}
	return payload, nil
}

// Put stores payload under name, replacing any previous payload whole.
func (s *Store) Put(ctx context.Context, name, payload string) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO documents (name, payload, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		name, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to put document %s: %w", name, err)
	}
	return nil
}

// Delete removes the document under name. Deleting a missing document is
// not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.conn.ExecContext(ctx, "DELETE FROM documents WHERE name = $1", name)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", name, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}
