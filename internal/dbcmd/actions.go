// Package dbcmd implements the crawl-history CLI commands.
package dbcmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	dbpkg "github.com/petern11/schema-crawler/pkg/db"
)

func SessionsAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	sessions, err := database.ListSessions(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-10s %-6s %-8s %-8s %-30s\n",
		"ID", "Created", "Locale", "URLs", "Records", "Found", "Output Dir")
	fmt.Println(strings.Repeat("-", 100))

	for _, s := range sessions {
		fmt.Printf("%-6d %-20s %-10s %-6d %-8d %-8d %-30s\n",
			s.SessionID,
			s.CreatedAt.Format("2006-01-02 15:04:05"),
			s.Locale,
			s.URLCount,
			s.RecordCount,
			s.SchemaFoundCount,
			s.OutputDir,
		)
	}

	fmt.Printf("\nTotal: %d sessions\n", len(sessions))
	fmt.Printf("\nTip: Use 'schema-crawler db session <id>' to see per-site outcomes\n")
	return nil
}

// SessionAction shows per-site outcomes for a specific session.
func SessionAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: schema-crawler db session <id>")
	}
	sessionID, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid session id %q: %w", c.Args().First(), err)
	}

	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	session, err := database.GetSessionByID(sessionID)
	if err != nil {
		return err
	}

	sites, err := database.GetSessionSites(sessionID)
	if err != nil {
		return err
	}

	fmt.Printf("Session %d\n", session.SessionID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Created:  %s\n", session.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Locale:   %s\n", session.Locale)
	fmt.Printf("Sites:    %d\n", session.URLCount)
	fmt.Printf("Records:  %d total (%d with schema)\n", session.RecordCount, session.SchemaFoundCount)
	fmt.Printf("Output:   %s\n", session.OutputDir)

	fmt.Printf("\nSite outcomes (%d):\n", len(sites))
	fmt.Println(strings.Repeat("-", 60))
	for _, site := range sites {
		line := fmt.Sprintf("%-14s x%-3d %s", site.Bucket, site.RecordCount, site.URL)
		if site.ErrorMessage != "" {
			line += fmt.Sprintf(" (%s)", site.ErrorMessage)
		}
		fmt.Println(line)
	}

	return nil
}
