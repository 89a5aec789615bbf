// Package crawl implements the crawl CLI command.
package crawl

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/petern11/schema-crawler/models"
	"github.com/petern11/schema-crawler/pkg/crawler"
	"github.com/petern11/schema-crawler/pkg/db"
	"github.com/petern11/schema-crawler/pkg/enrich"
	"github.com/petern11/schema-crawler/pkg/fetcher"
	"github.com/petern11/schema-crawler/pkg/report"
	"github.com/petern11/schema-crawler/pkg/storage"
)

const (
	apiKeyEnv  = "SCHEMA_OPTIMIZER_API_KEY"
	baseURLEnv = "SCHEMA_OPTIMIZER_BASE_URL"
)

func CrawlAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	// Input problems are fatal: nothing has been crawled yet.
	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	locale := c.String("locale")
	urls, err := config.URLsForLocale(locale)
	if err != nil {
		logger.Error("no crawlable URL list", "locale", locale, "error", err)
		os.Exit(1)
	}

	timeout, err := time.ParseDuration(c.String("timeout"))
	if err != nil {
		logger.Error("invalid timeout duration", "error", err)
		os.Exit(2)
	}

	var optimizer enrich.Optimizer
	if c.Bool("optimize") {
		apiKey := os.Getenv(apiKeyEnv)
		if apiKey == "" {
			logger.Warn("optimize requested but no API key set, skipping enrichment", "env", apiKeyEnv)
		} else {
			optimizer = enrich.NewLLMOptimizer(apiKey, os.Getenv(baseURLEnv), c.String("optimizer-model"))
		}
	}

	cr := crawler.New(fetcher.NewFetcher(timeout), optimizer, logger)
	logger.Info("Starting crawl", "locale", locale, "url_count", len(urls), "optimize", optimizer != nil)
	rs := cr.Crawl(urls)

	tables, summary := report.Build(rs)

	store, err := storage.New(c.String("output-dir"))
	if err != nil {
		logger.Error("failed to prepare output directory", "error", err)
		os.Exit(2)
	}

	var files []string
	for _, table := range tables {
		path, writeErr := store.WriteTable(table)
		if writeErr != nil {
			return fmt.Errorf("failed to write %s table: %w", table.SchemaType, writeErr)
		}
		logger.Info("Wrote bucket CSV", "type", table.SchemaType, "rows", len(table.Rows), "path", path)
		files = append(files, path)
	}

	summaryPath, err := store.WriteSummary(storage.RunSummary{
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		Locale:       locale,
		TotalSites:   len(urls),
		TotalRecords: summary.Total,
		ByType:       summary.ByType,
		Files:        files,
	})
	if err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	// Session history is a convenience; its failure must not fail a crawl
	// that already produced its artifacts.
	if !c.Bool("no-history") {
		recordSession(logger, c.String("db"), locale, urls, rs, summary, store.OutputDir)
	}

	logger.Info("Crawl finished",
		"records", summary.Total,
		"types", len(summary.ByType),
		"elapsed_seconds", time.Since(startTime).Seconds())
	fmt.Printf("Crawled %d site(s): %d record(s) across %d bucket(s)\nSummary: %s\n",
		len(urls), summary.Total, len(tables), summaryPath)
	return nil
}

func recordSession(logger *slog.Logger, dbPath, locale string, urls []string, rs *models.ResultSet, summary report.Summary, outputDir string) {
	database, err := db.Open(dbPath)
	if err != nil {
		logger.Warn("failed to open history database", "error", err)
		return
	}
	defer database.Close()

	schemaFound := 0
	for _, t := range rs.Types() {
		for _, rec := range rs.Records(t) {
			if rec.SchemaFound {
				schemaFound++
			}
		}
	}

	sessionID, err := database.InsertSession(locale, len(urls), summary.Total, schemaFound, outputDir, siteOutcomes(rs))
	if err != nil {
		logger.Warn("failed to record session", "error", err)
		return
	}
	logger.Info("Session recorded", "session_id", sessionID)
}

// siteOutcomes collapses the ResultSet into per-(url, bucket) rows for the
// history database, preserving crawl order.
func siteOutcomes(rs *models.ResultSet) []db.SiteOutcome {
	index := make(map[string]int)
	var outcomes []db.SiteOutcome
	for _, bucket := range rs.Types() {
		for _, rec := range rs.Records(bucket) {
			key := rec.SourceURL + "\x00" + bucket
			if i, ok := index[key]; ok {
				outcomes[i].RecordCount++
				continue
			}
			index[key] = len(outcomes)
			outcomes = append(outcomes, db.SiteOutcome{
				URL:          rec.SourceURL,
				Bucket:       bucket,
				RecordCount:  1,
				ErrorMessage: rec.ErrorMessage,
			})
		}
	}
	return outcomes
}
