package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mattn/go-sqlite3"

	"github.com/tnylea/failwhale/pkg/domain/model"
	"github.com/tnylea/failwhale/pkg/domain/types"
)

// DB is a SQLite-backed source store
type DB struct {
	db *sql.DB
}

// New opens (and creates if needed) the source database at the given path
func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open source database", goerr.V("path", path))
	}

	if err := db.Ping(); err != nil {
		return nil, goerr.Wrap(err, "failed to ping source database", goerr.V("path", path))
	}

	schema := `
	CREATE TABLE IF NOT EXISTS sources (
		url TEXT NOT NULL UNIQUE,
		added_at TIMESTAMP NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, goerr.Wrap(err, "failed to initialize source schema")
	}

	return &DB{db: db}, nil
}

// List returns all sources in insertion order
func (d *DB) List(ctx context.Context) ([]model.Source, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT url, added_at FROM sources ORDER BY added_at, rowid")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query sources")
	}
	defer rows.Close()

	var sources []model.Source
	for rows.Next() {
		var src model.Source
		if err := rows.Scan(&src.URL, &src.AddedAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan source row")
		}
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate source rows")
	}

	return sources, nil
}

// Add persists a new source, rejecting verbatim duplicates
func (d *DB) Add(ctx context.Context, src model.Source) error {
	_, err := d.db.ExecContext(ctx,
		"INSERT INTO sources (url, added_at) VALUES (?, ?)", src.URL, src.AddedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return goerr.Wrap(types.ErrDuplicateSource, "source already exists",
				goerr.V("url", src.URL))
		}
		return goerr.Wrap(err, "failed to insert source", goerr.V("url", src.URL))
	}
	return nil
}

// Remove deletes a source by URL
func (d *DB) Remove(ctx context.Context, url string) error {
	res, err := d.db.ExecContext(ctx, "DELETE FROM sources WHERE url = ?", url)
	if err != nil {
		return goerr.Wrap(err, "failed to delete source", goerr.V("url", url))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return goerr.Wrap(err, "failed to inspect delete result")
	}
	if affected == 0 {
		return goerr.Wrap(types.ErrSourceNotFound, "no such source", goerr.V("url", url))
	}

	return nil
}

// Close releases the database handle
func (d *DB) Close() error {
	return d.db.Close()
}
