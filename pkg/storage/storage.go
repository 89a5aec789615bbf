// Package storage persists report artifacts under the output directory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/petern11/schema-crawler/pkg/report"
)

type Storage struct {
	OutputDir string
}

func New(outputDir string) (*Storage, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Storage{OutputDir: outputDir}, nil
}

var unsafePathChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileNameForType maps a schema type to a filesystem-safe CSV name. Types
// can be full IRIs ("https://schema.org/Product"), so anything outside a
// conservative character set collapses to underscores.
func FileNameForType(schemaType string) string {
	name := unsafePathChars.ReplaceAllString(schemaType, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		name = "unknown"
	}
	return name + ".csv"
}

// WriteTable writes one bucket's CSV artifact and returns its path.
func (s *Storage) WriteTable(table report.Table) (string, error) {
	path := filepath.Join(s.OutputDir, FileNameForType(table.SchemaType))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Header); err != nil {
		return "", fmt.Errorf("error writing csv header: %w", err)
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("error writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("error flushing csv: %w", err)
	}
	return path, nil
}

// RunSummary is the summary.json artifact.
type RunSummary struct {
	GeneratedAt  string         `json:"generated_at"`
	Locale       string         `json:"locale"`
	TotalSites   int            `json:"total_sites"`
	TotalRecords int            `json:"total_records"`
	ByType       map[string]int `json:"by_type"`
	Files        []string       `json:"files,omitempty"`
}

// WriteSummary writes summary.json and returns its path.
func (s *Storage) WriteSummary(summary RunSummary) (string, error) {
	path := filepath.Join(s.OutputDir, "summary.json")
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshalling summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("error saving summary: %w", err)
	}
	return path, nil
}
