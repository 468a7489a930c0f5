package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"sitegen/internal/history"
	"sitegen/pkg/database"
)

func main() {
	var (
		limit = flag.Int("limit", 20, "number of recent builds to show")
	)
	flag.Parse()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	runs, err := history.Recent(ctx, db, *limit)
	if err != nil {
		log.Fatalf("query history failed: %v", err)
	}
	if len(runs) == 0 {
		fmt.Println("no recorded builds")
		return
	}

	fmt.Printf("%-25s %-9s %-17s %s\n", "STARTED", "PROJECTS", "LISTING", "CHANGES")
	for _, r := range runs {
		fmt.Printf("%-25s %-9d %-17s +%d -%d ~%d\n",
			r.StartedAt.Local().Format(time.RFC3339),
			r.ProjectCount,
			r.ListingHash,
			r.Added, r.Removed, r.Changed,
		)
	}
}
