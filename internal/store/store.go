package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the database connection and hands out repositories.
type Store struct {
	drv *entsql.Driver
}

// connection pragmas applied to every pooled connection via the DSN, so
// they hold no matter which connection serves a query.
var pragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"foreign_keys(1)",
	"synchronous(NORMAL)",
}

// Open connects to the SQLite database at dsn (a file path or a "file:"
// URI) and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, &PersistenceError{Op: "open", Err: err}
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	if err := migrate(context.Background(), drv); err != nil {
		drv.Close()
		return nil, &PersistenceError{Op: "migrate", Err: err}
	}

	return &Store{drv: drv}, nil
}

func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv, schema.WithForeignKeys(false))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	return m.Create(ctx, Tables...)
}

func withPragmas(dsn string) string {
	q := url.Values{}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	return dsn + sep + q.Encode()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// Plans returns the repository for generated study plans.
func (s *Store) Plans() *BlobRepo {
	return &BlobRepo{drv: s.drv, table: plansTable.Name}
}

// Tests returns the repository for generated question batches.
func (s *Store) Tests() *BlobRepo {
	return &BlobRepo{drv: s.drv, table: testsTable.Name}
}

// Results returns the repository for submitted tests.
func (s *Store) Results() *ResultRepo {
	return &ResultRepo{drv: s.drv}
}

// EventRepo returns the LLM request log.
func (s *Store) EventRepo() *LLMEventRepo {
	return &LLMEventRepo{drv: s.drv}
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
