package options

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// Source describes a database table serving the options of async columns
type Source struct {
	Driver      string `mapstructure:"driver" yaml:"driver"`
	DSN         string `mapstructure:"dsn" yaml:"dsn"`
	Host        string `mapstructure:"host" yaml:"host"`
	Port        int    `mapstructure:"port" yaml:"port"`
	Database    string `mapstructure:"database" yaml:"database"`
	User        string `mapstructure:"user" yaml:"user"`
	SSLMode     string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
	Table       string `mapstructure:"table" yaml:"table"`
	LabelColumn string `mapstructure:"label_column" yaml:"label_column"`
	ValueColumn string `mapstructure:"value_column" yaml:"value_column"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Closer is a loader holding a database handle
type Closer interface {
	Loader
	Close() error
}

// Open connects to the source. password is only used by PostgreSQL sources
// without a DSN.
func Open(ctx context.Context, src Source, password string, limit int) (Closer, error) {
	if src.Table == "" || src.LabelColumn == "" || src.ValueColumn == "" {
		return nil, errors.New("option source needs table, label_column and value_column")
	}

	switch src.Driver {
	case DriverPostgres:
		l, err := NewPostgresLoader(ctx, src, password, limit)
		if err != nil {
			return nil, err
		}
		return l, nil
	case DriverSQLite:
		l, err := NewSQLiteLoader(src, limit)
		if err != nil {
			return nil, err
		}
		return l, nil
	default:
		return nil, fmt.Errorf("unsupported option source driver %q", src.Driver)
	}
}

// connString builds a PostgreSQL connection string
func (s Source) connString(password string) string {
	if s.DSN != "" {
		return s.DSN
	}

	sslMode := s.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}
	port := s.Port
	if port == 0 {
		port = 5432
	}

	connStr := fmt.Sprintf("host=%s port=%d user=%s database=%s sslmode=%s",
		s.Host, port, s.User, s.Database, sslMode)
	if password != "" {
		connStr += fmt.Sprintf(" password=%s", password)
	}
	return connStr
}
