package commands

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"

	"github.com/ShahwaizZahid/Job-Listing/config"
	"github.com/ShahwaizZahid/Job-Listing/errors"
)

// DbCmd represents the db (database) command
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the job postings database",
	Long: `db — Manage job postings database operations

Manage database operations including statistics and diagnostics.

Examples:
  joblist db stats                # Show database statistics
  joblist db stats --limit 10     # Show the 10 most recent postings`,
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long:  "Display database statistics including job counts, type distribution, and the most recent postings",
	RunE:  runDbStats,
}

var (
	statsLimitFlag int
)

func init() {
	DbCmd.AddCommand(dbStatsCmd)
	dbStatsCmd.Flags().IntVar(&statsLimitFlag, "limit", 20, "Number of recent postings to show")
}

// dbStats aggregates the numbers runDbStats prints
type dbStats struct {
	TotalJobs       int
	DatedJobs       int
	UniqueCompanies int
	UniqueLocations int
	NewestPosting   sql.NullString
	TypeCounts      []typeCount
}

type typeCount struct {
	JobType string
	Count   int
}

func runDbStats(cmd *cobra.Command, args []string) error {
	// Load configuration for the resolved database path
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Open and migrate database
	database, err := openDatabase("")
	if err != nil {
		return errors.Wrap(err, "failed to open database")
	}
	defer database.Close()

	stats, err := collectStats(database)
	if err != nil {
		return err
	}

	// Print database info
	fmt.Printf("Database Statistics\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
	fmt.Printf("Database Path:     %s\n", cfg.GetDatabasePath())
	fmt.Printf("Total Jobs:        %d\n", stats.TotalJobs)
	fmt.Printf("With Parsed Date:  %d\n", stats.DatedJobs)
	fmt.Printf("Unique Companies:  %d\n", stats.UniqueCompanies)
	fmt.Printf("Unique Locations:  %d\n", stats.UniqueLocations)
	if stats.NewestPosting.Valid {
		fmt.Printf("Newest Posting:    %s\n", stats.NewestPosting.String)
	}
	fmt.Println()

	if len(stats.TypeCounts) > 0 {
		fmt.Printf("Jobs by Type:\n")
		for _, tc := range stats.TypeCounts {
			label := tc.JobType
			if label == "" {
				label = "<unset>"
			}
			fmt.Printf("  %-14s %d\n", label, tc.Count)
		}
		fmt.Println()
	}

	// List the most recent postings
	rows, err := database.Query(`
		SELECT title, company, COALESCE(posting_date, posting_date_raw, '') as posted
		FROM jobs
		ORDER BY posting_date DESC
		LIMIT ?
	`, statsLimitFlag)
	if err != nil {
		return fmt.Errorf("failed to query recent postings: %w", err)
	}
	defer rows.Close()

	fmt.Printf("Recent Postings (last %d):\n", statsLimitFlag)
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")

	var hasJobs bool
	for rows.Next() {
		hasJobs = true
		var title, company, posted string
		if err := rows.Scan(&title, &company, &posted); err != nil {
			return fmt.Errorf("failed to scan posting: %w", err)
		}
		if posted == "" {
			posted = "<undated>"
		}
		fmt.Printf("  %s at %s (%s)\n", title, company, posted)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read postings: %w", err)
	}

	if !hasJobs {
		fmt.Println("  No jobs stored yet")
	}

	return nil
}

// collectStats gathers aggregate statistics over the jobs table
func collectStats(database *bun.DB) (*dbStats, error) {
	stats := &dbStats{}

	err := database.QueryRow(`
		SELECT
			COUNT(*) as total_jobs,
			COUNT(posting_date) as dated_jobs,
			COUNT(DISTINCT company) as unique_companies,
			COUNT(DISTINCT location) as unique_locations,
			MAX(posting_date) as newest_posting
		FROM jobs
	`).Scan(&stats.TotalJobs, &stats.DatedJobs, &stats.UniqueCompanies, &stats.UniqueLocations, &stats.NewestPosting)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to query job stats: %w", err)
	}

	rows, err := database.Query(`
		SELECT COALESCE(job_type, '') as job_type, COUNT(*) as count
		FROM jobs
		GROUP BY job_type
		ORDER BY count DESC, job_type ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query job type distribution: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tc typeCount
		if err := rows.Scan(&tc.JobType, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan job type row: %w", err)
		}
		stats.TypeCounts = append(stats.TypeCounts, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job type rows: %w", err)
	}

	return stats, nil
}
