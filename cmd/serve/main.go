package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"sitegen/internal/config"
	"sitegen/internal/logging"
	"sitegen/internal/preview"
)

func main() {
	var (
		site       = flag.String("site", ".", "site checkout root")
		configPath = flag.String("config", "", "site.yaml path (default <site>/site.yaml)")
		addr       = flag.String("addr", ":8080", "listen address")
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := preview.NewHub()

	watcher, err := preview.NewWatcher(hub, logger)
	if err != nil {
		log.Fatalf("start watcher: %v", err)
	}
	if err := watcher.Watch(filepath.Join(cfg.SiteRoot, cfg.DataDir)); err != nil {
		log.Fatalf("watch data dir: %v", err)
	}
	go watcher.Run(ctx)

	server := &preview.Server{Log: logger, SiteRoot: cfg.SiteRoot}
	httpSrv := &http.Server{
		Addr:    *addr,
		Handler: server.Router(hub),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	logger.Infof("preview server on %s, serving %s", *addr, cfg.SiteRoot)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Fatalf("http server failed: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("shutdown: %v", err)
	}
}
