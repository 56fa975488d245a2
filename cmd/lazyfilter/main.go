package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/rebeliceyang/lazyfilter/internal/app"
	"github.com/rebeliceyang/lazyfilter/internal/config"
	"github.com/rebeliceyang/lazyfilter/internal/dataset"
	"github.com/rebeliceyang/lazyfilter/internal/secrets"
)

var (
	configFile  string
	datasetFile string
)

var rootCmd = &cobra.Command{
	Use:   "lazyfilter",
	Short: "Build filters over a dataset in the terminal",
	Long: `lazyfilter shows a dataset as a table and lets you narrow it down with
column / condition / value filters. Without --dataset it opens a demo issue list.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default: config.yaml in the user config dir)")
	rootCmd.PersistentFlags().StringVarP(&datasetFile, "dataset", "d", "", "YAML or JSON dataset file (default: built-in demo)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(columnsCmd)
	rootCmd.AddCommand(passwordCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config, falling back to defaults when it is unreadable
func loadConfig() *config.Config {
	cfg, err := config.Load(configFile)
	if err != nil {
		log.Printf("Warning: Could not load config: %v (using defaults)\n", err)
		cfg = config.GetDefaults()
	}
	return cfg
}

// datasetPath returns the dataset named by the flag, then the config
func datasetPath(cfg *config.Config) string {
	if datasetFile != "" {
		return datasetFile
	}
	return cfg.General.Dataset
}

// loadDataset opens the dataset file, falling back to the demo
func loadDataset(cfg *config.Config) (*dataset.Dataset, error) {
	path := datasetPath(cfg)
	if path == "" {
		return dataset.Demo()
	}
	return dataset.Load(path)
}

// openPasswordStore opens the keyring. Option sources still work without
// one as long as they need no stored password.
func openPasswordStore() app.PasswordLookup {
	dir, err := config.GetConfigPath()
	if err != nil {
		log.Printf("Warning: no config directory: %v", err)
		return nil
	}
	store, err := secrets.NewPasswordStore(dir)
	if err != nil {
		log.Printf("Warning: keyring unavailable: %v", err)
		return nil
	}
	if store.IsUsingFallback() {
		log.Printf("Using encrypted file keyring in %s", dir)
	}
	return store
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	// The TUI owns the terminal, so logs go to a file or nowhere
	if cfg.General.LogFile != "" {
		f, err := tea.LogToFile(cfg.General.LogFile, "lazyfilter")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	data, err := loadDataset(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	loaders, closeLoaders, err := app.BuildLoaders(ctx, cfg, data, openPasswordStore())
	if err != nil {
		return err
	}
	defer closeLoaders()

	zone.NewGlobal()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	model := app.New(cfg, data, loaders)
	model.SetDatasetPath(datasetPath(cfg))

	p := tea.NewProgram(model, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
