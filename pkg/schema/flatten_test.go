package schema

import (
	"encoding/json"
	"reflect"
	"testing"
)

func decodeJSON(t *testing.T, raw string) map[string]any {
	t.Helper()

	var block map[string]any
	if err := json.Unmarshal([]byte(raw), &block); err != nil {
		t.Fatalf("test input is not valid JSON: %v", err)
	}
	return block
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]any
	}{
		{
			name:  "nested objects get dotted paths",
			input: `{"a": {"b": 1, "c": 2}}`,
			want:  map[string]any{"a.b": float64(1), "a.c": float64(2)},
		},
		{
			name:  "already flat mapping is unchanged",
			input: `{"name": "Widget", "price": 9.99, "inStock": true}`,
			want:  map[string]any{"name": "Widget", "price": 9.99, "inStock": true},
		},
		{
			name:  "deep nesting",
			input: `{"a": {"b": {"c": {"d": "x"}}}}`,
			want:  map[string]any{"a.b.c.d": "x"},
		},
		{
			name:  "arrays are serialized whole, not expanded",
			input: `{"@type": ["Article", "NewsArticle"], "author": {"names": [1, 2]}}`,
			want: map[string]any{
				"@type":        `["Article","NewsArticle"]`,
				"author.names": `[1,2]`,
			},
		},
		{
			name:  "null passes through",
			input: `{"a": null}`,
			want:  map[string]any{"a": nil},
		},
		{
			name:  "empty object yields empty map",
			input: `{}`,
			want:  map[string]any{},
		},
		{
			name:  "empty nested object contributes no keys",
			input: `{"a": {}, "b": 1}`,
			want:  map[string]any{"b": float64(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(decodeJSON(t, tt.input), "")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Flatten() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestFlatten_Prefix(t *testing.T) {
	got := Flatten(decodeJSON(t, `{"b": 1}`), "a")
	want := map[string]any{"a.b": float64(1)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten() with prefix = %#v, want %#v", got, want)
	}
}

func TestFlatten_Deterministic(t *testing.T) {
	input := `{"a": {"b": [1, {"x": 2}], "c": "s"}, "d": false}`

	first := Flatten(decodeJSON(t, input), "")
	for i := 0; i < 10; i++ {
		again := Flatten(decodeJSON(t, input), "")
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Flatten() not deterministic: %#v vs %#v", first, again)
		}
	}
}

func TestFlatten_DoesNotMutateInput(t *testing.T) {
	block := decodeJSON(t, `{"a": {"b": 1}}`)
	Flatten(block, "")

	if _, ok := block["a"].(map[string]any); !ok {
		t.Error("Flatten() mutated its input")
	}
}
