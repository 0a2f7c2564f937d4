package sqlite

import (
	"context"
	"database/sql"
	"time"

	"paper2plan/internal/errors"
	"paper2plan/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for key-value persistence
type Repository interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]*Entry, error)

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions creates a repository whose reads and writes are bounded by
// the given timeouts. Zero timeouts leave the caller's context untouched.
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Get retrieves an entry by key
func (r *SQLiteRepository) Get(ctx context.Context, key string) (*Entry, error) {
	ctx, cancel := withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	query := `SELECT key, value, updated_at FROM kv_entries WHERE key = ?`
	return QuerySingle(ctx, r.db, query, ScanEntry, "entry", key, key)
}

// Put creates or replaces the value stored under key
func (r *SQLiteRepository) Put(ctx context.Context, key string, value string) error {
	ctx, cancel := withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	query := `
	INSERT INTO kv_entries (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query, key, value, FormatTimeForDB(time.Now()))
	if err != nil {
		return HandleDatabaseError("put "+key, err)
	}
	return nil
}

// Delete removes an entry by key
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	ctx, cancel := withTimeout(ctx, r.opts.WriteTimeout)
	defer cancel()

	query := `DELETE FROM kv_entries WHERE key = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "entry", key, key)
}

// List retrieves all entries ordered by key
func (r *SQLiteRepository) List(ctx context.Context) ([]*Entry, error) {
	ctx, cancel := withTimeout(ctx, r.opts.QueryTimeout)
	defer cancel()

	query := `SELECT key, value, updated_at FROM kv_entries ORDER BY key ASC`
	return QueryMultiple(ctx, r.db, query, ScanEntries, "entries")
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
