// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for the config directory and the
	// environment variable prefix.
	AppName = "schemareg"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
)

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		SchemaDir: "schemas",
		Engine:    EngineJSONSchema,
		Debounce:  500 * time.Millisecond,
	}
}

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
}

// Load resolves configuration from defaults, then an optional config file
// (an explicit path, or config.yaml in $XDG_CONFIG_HOME/schemareg and the
// current directory), then SCHEMAREG_* environment variables. A missing
// default-location file is not an error; a missing explicit file is.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault("schema_dir", defaults.SchemaDir)
	v.SetDefault("versions", defaults.Versions)
	v.SetDefault("engine", string(defaults.Engine))
	v.SetDefault("debounce", defaults.Debounce)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFilePath != "" {
		v.SetConfigFile(opts.ConfigFilePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load config %s: %w", opts.ConfigFilePath, err)
		}
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(dir + "/" + AppName)
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("load config: %w", err)
			}
			// No config file found: defaults plus environment apply.
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
