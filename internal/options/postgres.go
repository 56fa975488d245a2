package options

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// PostgresLoader searches options in a PostgreSQL table
type PostgresLoader struct {
	pool  *pgxpool.Pool
	query string
	limit int
}

// NewPostgresLoader connects to the source and checks the connection
func NewPostgresLoader(ctx context.Context, src Source, password string, limit int) (*PostgresLoader, error) {
	poolConfig, err := pgxpool.ParseConfig(src.connString(password))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse connection config")
	}

	poolConfig.MaxConns = 2
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create connection pool")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &PostgresLoader{
		pool:  pool,
		query: postgresQuery(src),
		limit: limit,
	}, nil
}

// postgresQuery selects label and value as text, matching labels with ILIKE
func postgresQuery(src Source) string {
	table := pgx.Identifier{src.Table}.Sanitize()
	label := pgx.Identifier{src.LabelColumn}.Sanitize()
	value := pgx.Identifier{src.ValueColumn}.Sanitize()

	return fmt.Sprintf(
		"SELECT %s::text AS label, %s::text AS value FROM %s WHERE %s::text ILIKE $1 ORDER BY 1 LIMIT $2",
		label, value, table, label,
	)
}

// Load returns the rows whose label contains query
func (l *PostgresLoader) Load(ctx context.Context, query string) ([]models.Option, error) {
	n := l.limit
	if n <= 0 {
		n = DefaultLimit
	}

	rows, err := l.pool.Query(ctx, l.query, "%"+query+"%", n)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query options")
	}
	defer rows.Close()

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

// Close closes the connection pool
func (l *PostgresLoader) Close() error {
	if l.pool != nil {
		l.pool.Close()
	}
	return nil
}
