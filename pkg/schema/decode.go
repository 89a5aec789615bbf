package schema

import (
	"encoding/json"
	"fmt"
)

// Decode parses one raw block candidate. Only JSON objects are accepted: the
// pipeline tabulates records keyed by object fields, so a bare array or
// scalar at the top level counts as a parse failure. Decoding is strict; a
// malformed block on a page must surface as a ParseError record, never get
// silently repaired.
func Decode(raw string) (map[string]any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("invalid JSON-LD: %w", err)
	}
	block, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("JSON-LD block is not an object (got %T)", v)
	}
	return block, nil
}
