package main

import (
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"

	"github.com/petern11/schema-crawler/internal/crawl"
	"github.com/petern11/schema-crawler/internal/dbcmd"
)

func main() {
	app := &cli.App{
		Name:  "schema-crawler",
		Usage: "crawl pages, extract JSON-LD schema blocks, and emit per-type CSVs",
		Commands: []*cli.Command{
			{
				Name:   "crawl",
				Usage:  "crawl the URL list configured for a locale",
				Action: crawl.CrawlAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "YAML file mapping locales to URL lists"},
					&cli.StringFlag{Name: "locale", Value: "en-US", Usage: "locale key selecting the URL list"},
					&cli.StringFlag{Name: "output-dir", Value: "results", Usage: "directory for CSV and summary artifacts"},
					&cli.StringFlag{Name: "timeout", Value: "15s", Usage: "per-request fetch timeout"},
					&cli.BoolFlag{Name: "optimize", Usage: "run decoded schemas through the LLM optimizer"},
					&cli.StringFlag{Name: "optimizer-model", Usage: "override the optimizer model"},
					&cli.StringFlag{Name: "db", Usage: "history database path (default schema-crawler.db)"},
					&cli.BoolFlag{Name: "no-history", Usage: "skip recording the session to the history database"},
					&cli.BoolFlag{Name: "quiet", Usage: "only log errors"},
				},
			},
			{
				Name:  "db",
				Usage: "inspect crawl history",
				Subcommands: []*cli.Command{
					{
						Name:   "sessions",
						Usage:  "list recent crawl sessions",
						Action: dbcmd.SessionsAction,
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "limit", Value: 20, Usage: "maximum sessions to show"},
							&cli.StringFlag{Name: "db", Usage: "history database path"},
						},
					},
					{
						Name:      "session",
						Usage:     "show one session's per-site outcomes",
						ArgsUsage: "<id>",
						Action:    dbcmd.SessionAction,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "db", Usage: "history database path"},
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
