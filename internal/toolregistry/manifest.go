package toolregistry

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest declares ad-hoc custom tools to register at startup.
type Manifest struct {
	Tools []ManifestTool `yaml:"tools"`
}

// ManifestTool is one custom-tool declaration. Schema is an inline JSON
// Schema document expressed in YAML.
type ManifestTool struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Schema      map[string]any `yaml:"schema"`
}

// LoadManifest registers every tool declared in a YAML manifest file. A tool
// with a malformed schema fails the whole load; the manifest is configuration
// and should not be partially applied.
func (r *Registry) LoadManifest(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open tool manifest: %w", err)
	}
	defer f.Close()
	return r.ReadManifest(f)
}

// ReadManifest parses and registers a YAML manifest from a reader.
func (r *Registry) ReadManifest(reader io.Reader) error {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("read tool manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return fmt.Errorf("parse tool manifest: %w", err)
	}

	for _, tool := range manifest.Tools {
		schema := tool.Schema
		if schema != nil {
			if normalized, ok := normalizeJSONValue(schema).(map[string]any); ok {
				schema = normalized
			}
			// Reject unusable schemas at load time, not at first call.
			if _, err := r.schemas.compiled(tool.Name, schema); err != nil {
				return fmt.Errorf("tool %s: %w", tool.Name, err)
			}
		}
		if err := r.RegisterCustom(CustomTool{
			Name:        tool.Name,
			Description: tool.Description,
			Schema:      schema,
		}); err != nil {
			return err
		}
	}
	return nil
}
