package main

import (
	"fmt"
	"os"

	"callstream/internal/config"
	"callstream/internal/logging"
	"callstream/internal/toolregistry"
)

// buildEnvironment loads configuration and assembles the pieces every
// subcommand needs: a leveled logger and a registry populated from the
// manifest and alias overrides.
func buildEnvironment(configPath string) (*config.Config, logging.Logger, *toolregistry.Registry, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logging.SetDefaultOutput(os.Stderr)
	logging.SetDefaultLevel(logging.ParseLevel(cfg.LogLevel))
	logger := logging.NewComponentLogger("callstream")

	registry := toolregistry.NewRegistry(logger)
	if cfg.ToolManifest != "" {
		if err := registry.LoadManifest(cfg.ToolManifest); err != nil {
			return nil, nil, nil, fmt.Errorf("load tool manifest: %w", err)
		}
	}
	for alias, canonical := range cfg.Aliases {
		if err := registry.AddAlias(alias, canonical); err != nil {
			logger.Warn("skipping alias %s -> %s: %v", alias, canonical, err)
		}
	}
	return cfg, logger, registry, nil
}
