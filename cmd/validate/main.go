package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"sitegen/internal/config"
	"sitegen/internal/logging"
	"sitegen/internal/validate"
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

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(*site, "site.yaml")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg.SiteRoot = *site

	v := &validate.Validator{
		Log:      logger,
		SiteRoot: cfg.SiteRoot,
		DataDir:  cfg.DataDir,
	}
	summary := v.Run()
	logger.Sync()

	if !summary.OK() {
		os.Exit(1)
	}
}
