package commands

import (
	"fmt"

	"github.com/ShahwaizZahid/Job-Listing/logger"
	"github.com/ShahwaizZahid/Job-Listing/version"
)

// printStartupBanner prints the user-friendly startup message
func printStartupBanner(verbosity int, dbPath string, port int) {
	info := version.Get()

	fmt.Printf("\n┌─ Job Listing API ───────────────────────────────────┐\n")
	fmt.Printf("│ Version:   %s (commit %s)\n", info.Version, info.Short())
	fmt.Printf("│ Built:     %s\n", info.BuildTime)
	fmt.Printf("│ Verbosity: %s\n", logger.LevelName(verbosity))
	fmt.Printf("│ Database:  %s\n", dbPath)
	fmt.Printf("│ Port:      %d\n", port)
	fmt.Printf("└─────────────────────────────────────────────────────┘\n\n")
	fmt.Printf("💡 Press Ctrl+C to stop\n\n")
}
