package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/joho/godotenv"

	"sitegen/internal/config"
	"sitegen/internal/legacy"
	"sitegen/internal/logging"
)

func main() {
	var (
		site       = flag.String("site", ".", "site checkout root")
		configPath = flag.String("config", "", "site.yaml path (default <site>/site.yaml)")
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

	m := &legacy.Migrator{Log: logger, Cfg: cfg}
	if err := m.RunProjects(); err != nil {
		log.Fatalf("project migration failed: %v", err)
	}
}
