// Package sqlite is the durable AssetCatalog implementation backing the
// local provider between runs.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"glossa/internal/models"
	"glossa/internal/store"
)

type Catalog struct {
	db *sql.DB
}

// Open opens (creating if needed) the catalog database at path and ensures
// the schema exists.
func Open(ctx context.Context, path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open asset catalog: %w", err)
	}

	// WAL keeps concurrent reads cheap while the worker installs assets.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init asset catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS assets (
	language TEXT NOT NULL,
	scheme TEXT NOT NULL,
	granularity TEXT NOT NULL,
	installed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (language, scheme, granularity)
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (c *Catalog) Installed(ctx context.Context, granularity models.TokenGranularity, language models.LanguageCode) (map[models.TagScheme]struct{}, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT scheme FROM assets WHERE granularity = ? AND language = ?`,
		string(granularity), string(language))
	if err != nil {
		return nil, fmt.Errorf("query installed assets: %w", err)
	}
	defer rows.Close()

	schemes := make(map[models.TagScheme]struct{})
	for rows.Next() {
		var scheme string
		if err := rows.Scan(&scheme); err != nil {
			return nil, fmt.Errorf("scan asset row: %w", err)
		}
		schemes[models.TagScheme(scheme)] = struct{}{}
	}
	return schemes, rows.Err()
}

func (c *Catalog) Install(ctx context.Context, language models.LanguageCode, scheme models.TagScheme, granularity models.TokenGranularity) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO assets (language, scheme, granularity) VALUES (?, ?, ?)`,
		string(language), string(scheme), string(granularity))
	if err != nil {
		return fmt.Errorf("install asset %s/%s: %w", language, scheme, err)
	}
	return nil
}

func (c *Catalog) List(ctx context.Context) ([]models.AssetRecord, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT language, scheme, granularity FROM assets ORDER BY language, scheme`)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var records []models.AssetRecord
	for rows.Next() {
		var language, scheme, granularity string
		if err := rows.Scan(&language, &scheme, &granularity); err != nil {
			return nil, fmt.Errorf("scan asset row: %w", err)
		}
		records = append(records, models.AssetRecord{
			Language:    models.LanguageCode(language),
			Scheme:      models.TagScheme(scheme),
			Granularity: models.TokenGranularity(granularity),
		})
	}
	return records, rows.Err()
}

func (c *Catalog) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

var _ store.AssetCatalog = (*Catalog)(nil)
