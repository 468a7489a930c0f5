package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"sitegen/internal/config"
	"sitegen/internal/legacy"
	"sitegen/internal/logging"
	"sitegen/internal/sheets"
)

func main() {
	var (
		site       = flag.String("site", ".", "site checkout root (must be a git checkout)")
		configPath = flag.String("config", "", "site.yaml path (default <site>/site.yaml)")
		idList     = flag.String("ids", "", "comma-separated project ids (default: all ids in the projects sheet)")
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

	ids := splitIDs(*idList)
	if len(ids) == 0 {
		projects, err := sheets.LoadProjects(filepath.Join(cfg.SiteRoot, cfg.SheetsDir))
		if err != nil {
			log.Fatalf("load projects sheet: %v", err)
		}
		for _, p := range projects {
			ids = append(ids, p.ID)
		}
	}

	m := &legacy.Migrator{Log: logger, Cfg: cfg}
	content := m.ExtractFromGit(ids)
	logger.Infof("extracted %d of %d projects from git history", len(content), len(ids))

	out, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		log.Fatalf("marshal output: %v", err)
	}
	fmt.Println(string(out))
}

func splitIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}
