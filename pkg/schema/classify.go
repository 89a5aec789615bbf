package schema

import (
	"fmt"

	"github.com/petern11/schema-crawler/models"
)

// TypeKey is the JSON-LD field naming a block's schema.org type.
const TypeKey = "@type"

// Classify returns the bucket key for a decoded block. A missing @type maps
// to models.TypeUnknown. An array @type is keyed by its first element only;
// the full value still reaches the output through the flattened row.
func Classify(block map[string]any) string {
	v, ok := block[TypeKey]
	if !ok {
		return models.TypeUnknown
	}
	switch t := v.(type) {
	case string:
		return t
	case []any:
		if len(t) == 0 {
			return models.TypeUnknown
		}
		return stringify(t[0])
	default:
		return stringify(v)
	}
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
