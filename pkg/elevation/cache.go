package elevation

import (
	"context"
	"database/sql"
	_ "embed"
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Cache keeps elevation samples in SQLite, keyed by coordinates rounded to
// 5 decimal places (about 1 m).
type Cache struct {
	db *sql.DB
}

// NewCache opens (or creates) the cache database at path. Use ":memory:" for
// a cache that lives as long as the process.
func NewCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open elevation cache")
	}
	if path == ":memory:" {
		// Every connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping elevation cache")
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to create elevation cache schema")
	}

	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

func roundCoord(coord float64) float64 {
	return math.Round(coord*100000) / 100000
}

// Get returns the cached elevation at p, if there is one.
func (c *Cache) Get(ctx context.Context, p orb.Point) (float64, bool, error) {
	var elevation float64
	err := c.db.QueryRowContext(ctx,
		`SELECT elevation FROM elevation_samples WHERE lat = ? AND lon = ?`,
		roundCoord(p.Lat()), roundCoord(p.Lon()),
	).Scan(&elevation)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, "failed to get cached elevation")
	}
	return elevation, true, nil
}

// SetBatch stores samples in a single transaction, replacing older values.
func (c *Cache) SetBatch(ctx context.Context, samples []Sample) error {
	if len(samples) == 0 {
		return nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	query := `
		INSERT INTO elevation_samples (lat, lon, elevation)
		VALUES (?, ?, ?)
		ON CONFLICT(lat, lon) DO UPDATE SET elevation = excluded.elevation, cached_at = CURRENT_TIMESTAMP
	`
	for _, s := range samples {
		if _, err := tx.ExecContext(ctx, query, roundCoord(s.Point.Lat()), roundCoord(s.Point.Lon()), s.Elevation); err != nil {
			return errors.Wrap(err, "failed to cache elevation")
		}
	}

	return errors.Wrap(tx.Commit(), "failed to commit elevation cache")
}
