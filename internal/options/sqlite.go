package options

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// SQLiteLoader searches options in a SQLite table
type SQLiteLoader struct {
	db    *sql.DB
	query string
	limit int
}

// NewSQLiteLoader opens the database file named by the source DSN
func NewSQLiteLoader(src Source, limit int) (*SQLiteLoader, error) {
	db, err := sql.Open("sqlite3", src.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}

	return &SQLiteLoader{
		db:    db,
		query: sqliteQuery(src),
		limit: limit,
	}, nil
}

func quoteSQLite(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// sqliteQuery selects label and value, matching labels with LIKE
// (case-insensitive for ASCII in SQLite)
func sqliteQuery(src Source) string {
	label := quoteSQLite(src.LabelColumn)
	return fmt.Sprintf(
		"SELECT CAST(%s AS TEXT), CAST(%s AS TEXT) FROM %s WHERE %s LIKE ? ORDER BY 1 LIMIT ?",
		label, quoteSQLite(src.ValueColumn), quoteSQLite(src.Table), label,
	)
}

// Load returns the rows whose label contains query
func (l *SQLiteLoader) Load(ctx context.Context, query string) ([]models.Option, error) {
	n := l.limit
	if n <= 0 {
		n = DefaultLimit
	}

	rows, err := l.db.QueryContext(ctx, l.query, "%"+query+"%", n)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query options")
	}
	defer func() { _ = rows.Close() }()

	var opts []models.Option
	for rows.Next() {
		var label, value string
		if err := rows.Scan(&label, &value); err != nil {
			return nil, errors.Wrap(err, "failed to scan option")
		}
		opts = append(opts, models.Option{"label": label, "value": value})
	}
	return opts, rows.Err()
}

// Close closes the database connection
func (l *SQLiteLoader) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}
