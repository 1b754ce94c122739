package commands

import (
	"github.com/uptrace/bun"

	"github.com/ShahwaizZahid/Job-Listing/config"
	"github.com/ShahwaizZahid/Job-Listing/db"
	"github.com/ShahwaizZahid/Job-Listing/errors"
	"github.com/ShahwaizZahid/Job-Listing/logger"
)

// openDatabase opens and migrates a database using the specified path.
// If dbPath is empty, it resolves the path from config. Uses logger.Logger
// for db operations.
func openDatabase(dbPath string) (*bun.DB, error) {
	if dbPath == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, errors.Wrap(err, "failed to load configuration")
		}
		dbPath = cfg.GetDatabasePath()
	}

	database, err := db.OpenWithMigrations(dbPath, logger.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", dbPath)
	}

	return database, nil
}
