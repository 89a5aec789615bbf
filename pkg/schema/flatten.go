// Package schema decodes, classifies and flattens JSON-LD blocks.
package schema

import (
	"encoding/json"
	"fmt"
)

// Flatten converts a decoded block into a single-level map keyed by dotted
// paths. Nested objects recurse; arrays are kept whole and stored as their
// JSON text under the current key, so one block always yields one row.
// Scalars pass through unchanged.
//
// Input comes out of json.Unmarshal, so it is acyclic and its object keys
// are unique per level; distinct paths cannot collide. If a collision were
// ever produced the last write would win, plain map semantics.
func Flatten(value map[string]any, prefix string) map[string]any {
	flat := make(map[string]any, len(value))
	for key, v := range value {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch nested := v.(type) {
		case map[string]any:
			for k, fv := range Flatten(nested, path) {
				flat[k] = fv
			}
		case []any:
			flat[path] = encodeSequence(nested)
		default:
			flat[path] = v
		}
	}
	return flat
}

func encodeSequence(seq []any) string {
	data, err := json.Marshal(seq)
	if err != nil {
		// Unreachable for json.Unmarshal output; keep a readable fallback.
		return fmt.Sprintf("%v", seq)
	}
	return string(data)
}
