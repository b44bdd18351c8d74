package protocol

import (
	"encoding/json"
	"strings"
)

// maxNormalizeDepth bounds the recursion of Normalize against adversarial or
// corrupted payloads. Each unwrap strictly consumes one layer of string
// encoding, so legitimate payloads stay far below this.
const maxNormalizeDepth = 256

// Normalize recursively rewrites a parsed JSON value: any string whose
// trimmed content starts and ends with matching {} or [] delimiters is
// re-parsed as JSON and replaced by the parsed structure, recursively, until
// no further unwrapping is possible. Arrays and objects are walked
// element-wise, other scalars pass through unchanged.
//
// The server sometimes double-encodes structured payloads as JSON inside a
// JSON string; without this step typed decoding of the outer envelope would
// see a string where the caller expects an object. A string that fails to
// re-parse is left as-is - that is expected, not an error.
func Normalize(v interface{}) interface{} {
	return normalize(v, 0)
}

func normalize(v interface{}, depth int) interface{} {
	if depth >= maxNormalizeDepth {
		return v
	}

	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if looksLikeJSON(s) {
			var inner interface{}
			if err := json.Unmarshal([]byte(s), &inner); err == nil {
				return normalize(inner, depth+1)
			}
		}
		return t

	case []interface{}:
		for i := range t {
			t[i] = normalize(t[i], depth+1)
		}
		return t

	case map[string]interface{}:
		for k := range t {
			t[k] = normalize(t[k], depth+1)
		}
		return t

	default:
		return v
	}
}

// looksLikeJSON reports whether a trimmed string is delimited like a JSON
// object or array.
func looksLikeJSON(s string) bool {
	return (strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")) ||
		(strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"))
}
