package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/feedgather/gather/internal/feed"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// Config holds database connection configuration.
type Config struct {
	URL string

	// ServiceKey is the hosted provider's service token. When set it is
	// checked for expiry before any connection is attempted.
	ServiceKey string

	MaxConnections     int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
	ConnectTimeout     time.Duration
}

// DefaultConfig returns sensible defaults for database configuration.
func DefaultConfig() Config {
	return Config{
		MaxConnections:     10,
		MaxIdleConnections: 2,
		ConnMaxLifetime:    5 * time.Minute,
		ConnectTimeout:     10 * time.Second,
	}
}

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// Connect validates the service key, opens a connection pool, verifies it
// with a bounded ping, and ensures the schema exists.
func Connect(ctx context.Context, cfg Config) (*PostgresStore, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	if cfg.ServiceKey != "" {
		if err := ValidateServiceKey(cfg.ServiceKey); err != nil {
			return nil, fmt.Errorf("invalid database service key: %w", err)
		}
	}

	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS items (
			id           TEXT PRIMARY KEY,
			source_name  TEXT NOT NULL,
			title        TEXT NOT NULL,
			link         TEXT NOT NULL UNIQUE,
			summary      TEXT,
			published_at TIMESTAMPTZ,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// InsertItems saves a batch of items, skipping links already stored.
func (s *PostgresStore) InsertItems(ctx context.Context, items []feed.Item) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO items (id, source_name, title, link, summary, published_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (link) DO NOTHING`

	for _, item := range items {
		var summary sql.NullString
		if item.Summary != "" {
			summary = sql.NullString{String: item.Summary, Valid: true}
		}

		var published sql.NullTime
		if item.Published != nil {
			published = sql.NullTime{Time: *item.Published, Valid: true}
		}

		if _, err := tx.ExecContext(ctx, query,
			item.ID, item.SourceName, item.Title, item.Link, summary, published,
		); err != nil {
			return fmt.Errorf("failed to insert item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit items: %w", err)
	}
	return nil
}

// ListItems returns all stored items newest-first, undated items last.
func (s *PostgresStore) ListItems(ctx context.Context) ([]feed.Item, error) {
	const query = `
		SELECT id, source_name, title, link, summary, published_at
		FROM items
		ORDER BY published_at DESC NULLS LAST, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []feed.Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// GetItem returns the item with the given ID, or nil when absent.
func (s *PostgresStore) GetItem(ctx context.Context, id string) (*feed.Item, error) {
	const query = `
		SELECT id, source_name, title, link, summary, published_at
		FROM items
		WHERE id = $1`

	row := s.db.QueryRowContext(ctx, query, id)
	item, err := scanItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func scanItem(scan func(dest ...any) error) (feed.Item, error) {
	var item feed.Item
	var summary sql.NullString
	var published sql.NullTime

	if err := scan(&item.ID, &item.SourceName, &item.Title, &item.Link, &summary, &published); err != nil {
		if err == sql.ErrNoRows {
			return feed.Item{}, err
		}
		return feed.Item{}, fmt.Errorf("failed to scan item: %w", err)
	}

	if summary.Valid {
		item.Summary = summary.String
	}
	if published.Valid {
		t := published.Time.UTC()
		item.Published = &t
	}
	return item, nil
}
