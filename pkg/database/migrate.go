package database

import (
	"database/sql"
	"fmt"
)

// schema is embedded so the binaries work from any working directory.
const schema = `
CREATE TABLE IF NOT EXISTS build_runs (
  id TEXT PRIMARY KEY,
  started_at TIMESTAMP NOT NULL,
  project_count INTEGER NOT NULL,
  listing_hash TEXT NOT NULL,
  added INTEGER NOT NULL,
  removed INTEGER NOT NULL,
  changed INTEGER NOT NULL
);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
