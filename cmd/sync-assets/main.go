package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/joho/godotenv"

	"sitegen/internal/assets"
	"sitegen/internal/config"
	"sitegen/internal/logging"
)

func main() {
	var (
		site       = flag.String("site", ".", "site checkout root")
		configPath = flag.String("config", "", "site.yaml path (default <site>/site.yaml)")
		dryRun     = flag.Bool("dry-run", false, "report planned renames without touching the tree")
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

	s := &assets.Syncer{
		Log:               logger,
		SiteRoot:          cfg.SiteRoot,
		DataDir:           cfg.DataDir,
		AllowedExtensions: cfg.AllowedExtensions,
		DryRun:            *dryRun,
	}
	if err := s.Run(); err != nil {
		log.Fatalf("asset sync failed: %v", err)
	}
}
