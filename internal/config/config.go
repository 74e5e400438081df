// Package config loads the CLI harness configuration: log level, custom-tool
// manifest location, and alias overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "CALLSTREAM"

// Config is the harness configuration. The parser library itself takes all
// of this as plain arguments; only the CLI reads files and environment.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// ToolManifest optionally points at a YAML manifest of custom tools to
	// register before parsing.
	ToolManifest string `mapstructure:"tool_manifest"`

	// Aliases maps additional alias spellings onto canonical static tool
	// names, layered on top of the builtin alias table.
	Aliases map[string]string `mapstructure:"aliases"`
}

// Load reads configuration from an optional file plus CALLSTREAM_* env vars.
// An empty path searches for callstream.yaml in the working directory; a
// missing file is fine, env and defaults still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	// Every key needs a default: AutomaticEnv only surfaces env values during
	// Unmarshal for keys viper already knows about.
	v.SetDefault("log_level", "info")
	v.SetDefault("tool_manifest", "")
	v.SetDefault("aliases", map[string]string{})

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("callstream")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
