// Package history keeps a local log of compiler runs so "what changed and
// when" survives past the single change report the build overwrites.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Run is one recorded compiler invocation.
type Run struct {
	ID           string
	StartedAt    time.Time
	ProjectCount int
	ListingHash  string
	Added        int
	Removed      int
	Changed      int
}

// Record inserts one run.
func Record(ctx context.Context, db *sql.DB, run Run) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO build_runs (id, started_at, project_count, listing_hash, added, removed, changed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.StartedAt.UTC(),
		run.ProjectCount,
		run.ListingHash,
		run.Added,
		run.Removed,
		run.Changed,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	return nil
}

// Recent returns the latest runs, newest first.
func Recent(ctx context.Context, db *sql.DB, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.QueryContext(ctx, `
		SELECT id, started_at, project_count, listing_hash, added, removed, changed
		FROM build_runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.ProjectCount, &r.ListingHash, &r.Added, &r.Removed, &r.Changed); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
