package toolregistry

import (
	"bytes"
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const defaultSchemaCacheSize = 128

// schemaCache memoizes compiled custom-tool schemas. Compilation happens at
// most once per registered name until the tool is re-registered.
type schemaCache struct {
	cache *lru.Cache[string, *jsonschema.Schema]
}

func newSchemaCache(size int) (*schemaCache, error) {
	cache, err := lru.New[string, *jsonschema.Schema](size)
	if err != nil {
		return nil, fmt.Errorf("create schema cache: %w", err)
	}
	return &schemaCache{cache: cache}, nil
}

func (c *schemaCache) compiled(name string, doc map[string]any) (*jsonschema.Schema, error) {
	if schema, ok := c.cache.Get(name); ok {
		return schema, nil
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}

	url := name + ".schema.json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, parsed); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	c.cache.Add(name, schema)
	return schema, nil
}

func (c *schemaCache) invalidate(name string) {
	c.cache.Remove(name)
}
