package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rebeliceyang/lazyfilter/internal/app"
	"github.com/rebeliceyang/lazyfilter/internal/config"
	"github.com/rebeliceyang/lazyfilter/internal/options"
	"github.com/rebeliceyang/lazyfilter/internal/secrets"
)

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Manage keyring passwords of PostgreSQL option sources",
}

var passwordSetCmd = &cobra.Command{
	Use:     "set <source>",
	Short:   "Store the password of an option source, read from stdin",
	Args:    cobra.ExactArgs(1),
	Example: `  echo "$PGPASSWORD" | lazyfilter password set teams`,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, store, err := passwordTarget(args[0])
		if err != nil {
			return err
		}
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password := strings.TrimRight(line, "\r\n")
		if password == "" {
			return fmt.Errorf("empty password")
		}
		if err := store.Save(app.CredentialOf(src), password); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved password for %s@%s/%s\n", src.User, src.Host, src.Database)
		return nil
	},
}

var passwordDeleteCmd = &cobra.Command{
	Use:   "delete <source>",
	Short: "Remove the stored password of an option source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, store, err := passwordTarget(args[0])
		if err != nil {
			return err
		}
		return store.Delete(app.CredentialOf(src))
	},
}

func init() {
	passwordCmd.AddCommand(passwordSetCmd)
	passwordCmd.AddCommand(passwordDeleteCmd)
}

// passwordTarget looks up a configured PostgreSQL source and opens the keyring
func passwordTarget(name string) (options.Source, *secrets.PasswordStore, error) {
	cfg := loadConfig()
	src, ok := cfg.Options.Sources[name]
	if !ok {
		return options.Source{}, nil, fmt.Errorf("no option source %q in config", name)
	}
	if src.Driver != options.DriverPostgres {
		return options.Source{}, nil, fmt.Errorf("option source %q uses %s, which takes no password", name, src.Driver)
	}

	dir, err := config.GetConfigPath()
	if err != nil {
		return options.Source{}, nil, err
	}
	store, err := secrets.NewPasswordStore(dir)
	if err != nil {
		return options.Source{}, nil, err
	}
	return src, store, nil
}
