package schema

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name: "valid JSON-LD object",
			raw:  `{"@context": "https://schema.org", "@type": "Product", "name": "Widget"}`,
		},
		{
			name:    "malformed JSON",
			raw:     `{"@type": "Product", "name": }`,
			wantErr: true,
		},
		{
			name:    "top-level array is rejected",
			raw:     `[{"@type": "Product"}]`,
			wantErr: true,
		},
		{
			name:    "top-level scalar is rejected",
			raw:     `"Product"`,
			wantErr: true,
		},
		{
			name:    "single quotes are not silently repaired",
			raw:     `{'@type': 'Product'}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, err := Decode(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && block == nil {
				t.Error("Decode() returned nil block without error")
			}
		})
	}
}
