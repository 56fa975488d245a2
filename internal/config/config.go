package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/rebeliceyang/lazyfilter/internal/options"
)

const appName = "lazyfilter"

// Config holds all application configuration
type Config struct {
	General GeneralConfig `mapstructure:"general"`
	UI      UIConfig      `mapstructure:"ui"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Options OptionsConfig `mapstructure:"options"`
}

type GeneralConfig struct {
	// Dataset is the YAML or JSON file to filter; empty uses the built-in demo
	Dataset string `mapstructure:"dataset"`
	LogFile string `mapstructure:"log_file"`
}

type UIConfig struct {
	Theme        string `mapstructure:"theme"`
	MouseEnabled bool   `mapstructure:"mouse_enabled"`
	MaxCellWidth int    `mapstructure:"max_cell_width"`
}

type FilterConfig struct {
	// StrictConditions makes conditions the evaluator does not know match nothing
	StrictConditions bool `mapstructure:"strict_conditions"`
}

type OptionsConfig struct {
	DebounceMS int                       `mapstructure:"debounce_ms"`
	Limit      int                       `mapstructure:"limit"`
	Sources    map[string]options.Source `mapstructure:"sources"`
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	return &Config{
		UI: UIConfig{
			Theme:        "default",
			MouseEnabled: true,
			MaxCellWidth: 40,
		},
		Options: OptionsConfig{
			DebounceMS: 300,
			Limit:      options.DefaultLimit,
			Sources:    map[string]options.Source{},
		},
	}
}

// Load loads configuration. An explicit file must exist; otherwise config.yaml
// is looked up in the user config directory, the current directory and ./config.
// Environment variables such as LAZYFILTER_UI_THEME override file values.
func Load(file string) (*Config, error) {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if configDir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(configDir, appName))
		}
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("general.dataset", "")
	v.SetDefault("general.log_file", "")
	v.SetDefault("ui.theme", "default")
	v.SetDefault("ui.mouse_enabled", true)
	v.SetDefault("ui.max_cell_width", 40)
	v.SetDefault("filter.strict_conditions", false)
	v.SetDefault("options.debounce_ms", 300)
	v.SetDefault("options.limit", options.DefaultLimit)

	// A missing config file is fine, we have defaults
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if cfg.Options.Sources == nil {
		cfg.Options.Sources = map[string]options.Source{}
	}

	return &cfg, nil
}

// GetConfigPath returns the user config directory path
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName), nil
}
