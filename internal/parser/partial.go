package parser

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// decodeLenient attempts a best-effort decode of a possibly truncated JSON
// document: a straight parse, then the jsonrepair library, then a
// conservative fallback completion. It returns the decoded object, whether a
// repair stage was needed, and whether anything decodable was found at all.
// Failures are silent because callers treat them as "no update yet".
func decodeLenient(text string) (args map[string]any, repaired bool, ok bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false, false
	}

	if err := json.Unmarshal([]byte(trimmed), &args); err == nil {
		return args, false, true
	}

	if fixed, err := jsonrepair.JSONRepair(trimmed); err == nil {
		if err := json.Unmarshal([]byte(fixed), &args); err == nil {
			return args, true, true
		}
	}

	if fallback := fallbackRepair(trimmed); fallback != trimmed {
		if err := json.Unmarshal([]byte(fallback), &args); err == nil {
			return args, true, true
		}
	}

	return nil, false, false
}

// decodeStrict parses a complete accumulated argument document with a
// standard, non-lenient decoder. Empty text parses as an empty object;
// anything else must already be valid JSON. Repair tolerance lives
// exclusively on the partial path.
func decodeStrict(text string) (map[string]any, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return map[string]any{}, nil
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(trimmed), &args); err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// fallbackRepair is a conservative completion for documents truncated at the
// top level: it drops a trailing half-written pair and closes the object.
// Used only after jsonrepair itself failed.
func fallbackRepair(jsonStr string) string {
	jsonStr = strings.TrimSpace(jsonStr)

	if !strings.HasPrefix(jsonStr, "{") {
		return jsonStr
	}
	if strings.HasSuffix(jsonStr, "}") {
		return jsonStr
	}

	lastCommaIndex := strings.LastIndex(jsonStr, ",")
	lastColonIndex := strings.LastIndex(jsonStr, ":")

	switch {
	case strings.HasSuffix(jsonStr, ","):
		// Truncated between pairs.
		jsonStr = jsonStr[:len(jsonStr)-1]
	case lastCommaIndex > lastColonIndex:
		// Truncated inside an unfinished value; keep the last complete pair.
		jsonStr = jsonStr[:lastCommaIndex]
	case lastColonIndex > 0:
		// Truncated inside the last pair; drop it by truncating at the
		// opening quote of its key.
		beforeColon := jsonStr[:lastColonIndex]
		closing := strings.LastIndexByte(beforeColon, '"')
		if closing > 0 {
			if opening := strings.LastIndexByte(beforeColon[:closing], '"'); opening >= 0 {
				jsonStr = jsonStr[:opening]
			}
		}
	}

	jsonStr = strings.TrimRight(jsonStr, ", \t\n")
	return jsonStr + "}"
}
