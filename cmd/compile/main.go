package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"sitegen/internal/compile"
	"sitegen/internal/config"
	"sitegen/internal/history"
	"sitegen/internal/logging"
	"sitegen/pkg/database"
)

func main() {
	var (
		site       = flag.String("site", ".", "site checkout root")
		configPath = flag.String("config", "", "site.yaml path (default <site>/site.yaml)")
		noHistory  = flag.Bool("no-history", false, "skip recording the run in the local history db")
		debug      = flag.Bool("debug", false, "verbose logging")
	)
	flag.Parse()

	_ = godotenv.Load()

	logger := logging.New(*debug)
	defer logger.Sync()

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(*site, "site.yaml")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg.SiteRoot = *site

	started := time.Now()

	c := &compile.Compiler{
		Log:       logger,
		SiteRoot:  cfg.SiteRoot,
		SheetsDir: cfg.SheetsDir,
		DataDir:   cfg.DataDir,
	}
	result, err := c.Run()
	if err != nil {
		log.Fatalf("compile failed: %v", err)
	}

	fmt.Print(result.Report)

	if !*noHistory {
		recordRun(logger, started, result)
	}
}

// recordRun logs the build into the local sqlite history. The history is a
// convenience, so failures warn instead of failing a successful build.
func recordRun(logger *zap.SugaredLogger, started time.Time, result *compile.Result) {
	db, err := database.Open(database.DefaultConfig())
	if err != nil {
		logger.Warnf("history db unavailable: %v", err)
		return
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Warnf("history db migrate failed: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = history.Record(ctx, db, history.Run{
		ID:           uuid.NewString(),
		StartedAt:    started,
		ProjectCount: result.ProjectCount,
		ListingHash:  result.ListingHash,
		Added:        len(result.Change.Added),
		Removed:      len(result.Change.Removed),
		Changed:      len(result.Change.Changed),
	})
	if err != nil {
		logger.Warnf("history record failed: %v", err)
	}
}
