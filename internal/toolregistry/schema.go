package toolregistry

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"

	"callstream/internal/ports"
)

var (
	staticSchemaMu   sync.Mutex
	staticSchemaMemo = make(map[string]map[string]any)
)

// reflectToolSchema derives the provider-facing JSON schema for a static tool
// from its typed argument struct. Required fields are exactly the fields
// without omitempty, which keeps the advertised schema and the strict
// projection contract in lockstep.
func reflectToolSchema(args ports.ToolArguments) map[string]any {
	name := args.ArgsFor()

	staticSchemaMu.Lock()
	defer staticSchemaMu.Unlock()
	if memo, ok := staticSchemaMemo[name]; ok {
		return memo
	}

	reflector := jsonschema.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		AllowAdditionalProperties: false,
	}
	schema := reflector.Reflect(args)

	raw, err := json.Marshal(schema)
	if err != nil {
		return map[string]any{"type": "object"}
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]any{"type": "object"}
	}
	// The $schema keyword is noise in a provider tools payload.
	delete(out, "$schema")

	staticSchemaMemo[name] = out
	return out
}

// normalizeJSONValue round-trips a value through encoding/json so schema
// validation always sees JSON-native types, regardless of whether the value
// came from a JSON or YAML decoder.
func normalizeJSONValue(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}
