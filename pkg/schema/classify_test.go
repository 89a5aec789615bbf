package schema

import (
	"testing"

	"github.com/petern11/schema-crawler/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		block map[string]any
		want  string
	}{
		{
			name:  "plain string type",
			block: map[string]any{"@type": "Product", "name": "Widget"},
			want:  "Product",
		},
		{
			name:  "array type takes first element",
			block: map[string]any{"@type": []any{"Article", "NewsArticle"}},
			want:  "Article",
		},
		{
			name:  "missing type is UnknownType",
			block: map[string]any{},
			want:  models.TypeUnknown,
		},
		{
			name:  "empty array type is UnknownType",
			block: map[string]any{"@type": []any{}},
			want:  models.TypeUnknown,
		},
		{
			name:  "non-string scalar is stringified",
			block: map[string]any{"@type": float64(42)},
			want:  "42",
		},
		{
			name:  "array with non-string head is stringified",
			block: map[string]any{"@type": []any{float64(7), "Article"}},
			want:  "7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.block); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify_FullTypeValueSurvivesFlatten(t *testing.T) {
	block := map[string]any{"@type": []any{"Article", "NewsArticle"}}

	if got := Classify(block); got != "Article" {
		t.Fatalf("Classify() = %q, want %q", got, "Article")
	}

	flat := Flatten(block, "")
	if got := flat["@type"]; got != `["Article","NewsArticle"]` {
		t.Errorf("flattened @type = %v, want the full serialized list", got)
	}
}
