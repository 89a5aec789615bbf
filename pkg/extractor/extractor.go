// Package extractor locates JSON-LD blocks inside a parsed document.
package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const jsonLDSelector = `script[type="application/ld+json"]`

// Blocks returns the raw text of every JSON-LD script element in the
// document, in document order. Each candidate is decoded independently by
// the caller. Zero candidates is a normal outcome, not an error; elements
// with only whitespace carry no candidate at all.
func Blocks(doc *goquery.Document) []string {
	var blocks []string
	doc.Find(jsonLDSelector).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	return blocks
}
