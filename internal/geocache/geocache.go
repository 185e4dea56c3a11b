// Package geocache persists lookup answers in SQLite so repeated
// correction runs do not re-scrape places they have already resolved.
// It wraps any Geocoder; both hits and not-found answers are cached,
// since a place missing from Maps today is usually missing tomorrow.
package geocache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aeroatlas/spotmerge/pkg/constants"
	"github.com/aeroatlas/spotmerge/pkg/correct"
	spoterrors "github.com/aeroatlas/spotmerge/pkg/errors"
	"github.com/aeroatlas/spotmerge/pkg/geo"
	"github.com/aeroatlas/spotmerge/pkg/logging"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS lookups (
    name       TEXT NOT NULL,
    address    TEXT NOT NULL,
    lat        REAL NOT NULL,
    lng        REAL NOT NULL,
    found      INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    PRIMARY KEY (name, address)
)`

// Cache is a persistent lookup cache in front of another Geocoder.
type Cache struct {
	db   *sql.DB
	next correct.Geocoder
	path string
}

var _ correct.Geocoder = (*Cache)(nil)

// Open connects to the cache database at path, creating the file and
// its parent directory when absent, and wraps next with it.
func Open(path string, next correct.Geocoder) (*Cache, error) {
	if next == nil {
		return nil, &spoterrors.ValidationError{
			Field:   "geocoder",
			Message: "cannot be nil",
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return nil, spoterrors.WrapIO("mkdir", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, spoterrors.WrapIO("open", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create cache schema: %w", err)
	}

	return &Cache{db: db, next: next, path: path}, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Geocode answers from the cache when it can and consults the wrapped
// Geocoder otherwise, storing whatever it answers. Cache failures are
// logged and degrade to a plain passthrough, a broken cache must not
// break lookups.
func (c *Cache) Geocode(ctx context.Context, name, address string) (geo.Point, bool) {
	logger := logging.FromContext(ctx)

	var (
		lat, lng float64
		found    int
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT lat, lng, found FROM lookups WHERE name = ? AND address = ?`,
		name, address,
	).Scan(&lat, &lng, &found)
	if err == nil {
		logger.Debug().Str("name", name).Bool("found", found != 0).Msg("Lookup cache hit")
		return geo.Point{Lat: lat, Lng: lng}, found != 0
	}
	if !errors.Is(err, sql.ErrNoRows) {
		logger.Warn().Err(err).Str("name", name).Msg("Lookup cache read failed")
	}

	point, ok := c.next.Geocode(ctx, name, address)

	// A canceled lookup answers false without meaning it; never cache it.
	if ctx.Err() != nil {
		return point, ok
	}

	if err := c.store(ctx, name, address, point, ok); err != nil {
		logger.Warn().Err(err).Str("name", name).Msg("Lookup cache write failed")
	}
	return point, ok
}

func (c *Cache) store(ctx context.Context, name, address string, point geo.Point, found bool) error {
	foundInt := 0
	if found {
		foundInt = 1
	}
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO lookups (name, address, lat, lng, found, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		name,
		address,
		point.Lat,
		point.Lng,
		foundInt,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store lookup: %w", err)
	}
	return nil
}

// Clear removes every cached answer and reports how many there were.
func (c *Cache) Clear(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx, `DELETE FROM lookups`)
	if err != nil {
		return 0, fmt.Errorf("clear cache: %w", err)
	}
	return res.RowsAffected()
}

// Size returns the number of cached answers.
func (c *Cache) Size(ctx context.Context) (int, error) {
	var count int
	err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lookups`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count cache entries: %w", err)
	}
	return count, nil
}
