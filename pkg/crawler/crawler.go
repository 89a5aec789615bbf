// Package crawler drives the per-site pipeline: fetch, extract, decode,
// classify, flatten, bucket.
package crawler

import (
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"github.com/petern11/schema-crawler/models"
	"github.com/petern11/schema-crawler/pkg/enrich"
	"github.com/petern11/schema-crawler/pkg/extractor"
	"github.com/petern11/schema-crawler/pkg/schema"
)

const noSchemaMessage = "No schema markup found"

// Fetcher is the transport the crawler pulls pages through.
type Fetcher interface {
	Get(url string) (*goquery.Document, error)
}

type Crawler struct {
	fetcher   Fetcher
	optimizer enrich.Optimizer // nil disables enrichment
	logger    *slog.Logger
}

func New(fetcher Fetcher, optimizer enrich.Optimizer, logger *slog.Logger) *Crawler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Crawler{fetcher: fetcher, optimizer: optimizer, logger: logger}
}

// Crawl processes sites one at a time, in input order, and returns the
// bucketed records. Site and block failures become records; they never
// abort the run.
func (c *Crawler) Crawl(urls []string) *models.ResultSet {
	rs := models.NewResultSet()
	for _, url := range urls {
		c.CrawlSite(url, rs)
	}
	return rs
}

// CrawlSite runs one site through the pipeline, appending every outcome to
// rs. A fetch failure or a page without blocks yields exactly one record;
// otherwise every block contributes a record of its own.
func (c *Crawler) CrawlSite(url string, rs *models.ResultSet) {
	c.logger.Info("Crawling site", "url", url)

	doc, err := c.fetcher.Get(url)
	if err != nil {
		c.logger.Error("Fetch failed", "url", url, "error", err)
		rs.Add(models.TypeCrawlError, models.Record{
			SourceURL:    url,
			ErrorMessage: err.Error(),
		})
		return
	}

	blocks := extractor.Blocks(doc)
	if len(blocks) == 0 {
		c.logger.Info("No schema markup on page", "url", url)
		rs.Add(models.TypeNoSchema, models.Record{
			SourceURL:    url,
			ErrorMessage: noSchemaMessage,
		})
		return
	}

	// Every block is decoded and recorded on its own; one bad block never
	// hides another block's outcome.
	for i, raw := range blocks {
		block, err := schema.Decode(raw)
		if err != nil {
			c.logger.Warn("Block failed to decode", "url", url, "block", i, "error", err)
			rs.Add(models.TypeParseError, models.Record{
				SourceURL:    url,
				ErrorMessage: err.Error(),
			})
			continue
		}

		if c.optimizer != nil {
			optimized, optErr := c.optimizer.Optimize(block)
			if optErr != nil {
				c.logger.Warn("Schema optimization failed, keeping original block",
					"url", url, "block", i, "error", optErr)
			} else {
				block = optimized
			}
		}

		schemaType := schema.Classify(block)
		rs.Add(schemaType, models.Record{
			SourceURL:   url,
			SchemaFound: true,
			Fields:      schema.Flatten(block, ""),
		})
		c.logger.Info("Recorded schema block", "url", url, "block", i, "type", schemaType)
	}
}
