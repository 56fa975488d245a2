package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/rebeliceyang/lazyfilter/internal/config"
	"github.com/rebeliceyang/lazyfilter/internal/dataset"
	"github.com/rebeliceyang/lazyfilter/internal/models"
	"github.com/rebeliceyang/lazyfilter/internal/options"
	"github.com/rebeliceyang/lazyfilter/internal/secrets"
)

// PasswordLookup returns the stored password of a database login
type PasswordLookup interface {
	Get(c secrets.Credential) (string, error)
}

// CredentialOf identifies the login a source connects with
func CredentialOf(src options.Source) secrets.Credential {
	return secrets.Credential{
		Driver:   src.Driver,
		Host:     src.Host,
		Port:     src.Port,
		Database: src.Database,
		User:     src.User,
	}
}

// BuildLoaders registers a loader for every async column of data. Columns
// whose loader name has a configured source query that database; the rest
// search the distinct values found in the records. The returned function
// closes every opened database.
func BuildLoaders(ctx context.Context, cfg *config.Config, data *dataset.Dataset, passwords PasswordLookup) (*options.Registry, func(), error) {
	reg := options.NewRegistry()
	var opened []options.Closer
	closeAll := func() {
		for _, c := range opened {
			if err := c.Close(); err != nil {
				log.Printf("Warning: closing option source: %v", err)
			}
		}
	}

	for _, col := range data.Columns {
		p, ok := col.Props.(models.AsyncListProps)
		if !ok || p.LoadOptionsOf == "" {
			continue
		}
		if _, done := reg.Get(p.LoadOptionsOf); done {
			continue
		}

		src, configured := cfg.Options.Sources[p.LoadOptionsOf]
		if !configured {
			labelKey, _ := models.OptionKeys(p)
			reg.Register(p.LoadOptionsOf, options.StaticLoader{
				Options:  data.FieldOptions(col),
				LabelKey: labelKey,
				Limit:    cfg.Options.Limit,
			})
			continue
		}

		password, err := sourcePassword(src, passwords)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		l, err := options.Open(ctx, src, password, cfg.Options.Limit)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("option source %q: %w", p.LoadOptionsOf, err)
		}
		opened = append(opened, l)
		reg.Register(p.LoadOptionsOf, l)
		log.Printf("Option source %q uses %s table %s", p.LoadOptionsOf, src.Driver, src.Table)
	}

	log.Printf("Registered option loaders: %v", reg.Names())
	return reg, closeAll, nil
}

// sourcePassword reads the keyring password of PostgreSQL sources that do
// not carry a DSN. A missing password is not an error.
func sourcePassword(src options.Source, passwords PasswordLookup) (string, error) {
	if passwords == nil || src.Driver != options.DriverPostgres || src.DSN != "" {
		return "", nil
	}
	pw, err := passwords.Get(CredentialOf(src))
	if errors.Is(err, secrets.ErrPasswordNotFound) {
		return "", nil
	}
	return pw, err
}
