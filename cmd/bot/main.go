package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/floralab/bloombot/internal/config"
	"github.com/floralab/bloombot/internal/dispatch"
	"github.com/floralab/bloombot/internal/handler"
	"github.com/floralab/bloombot/internal/screens"
	"github.com/floralab/bloombot/internal/service/geo"
	"github.com/floralab/bloombot/internal/service/media"
	"github.com/floralab/bloombot/internal/service/recommend"
	"github.com/floralab/bloombot/internal/session"
	"github.com/floralab/bloombot/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := sql.Open("sqlite", cfg.Storage.Path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	shop, err := store.New(db)
	if err != nil {
		log.Fatalf("failed to initialize store: %v", err)
	}
	if err := shop.SeedFlowers(ctx); err != nil {
		log.Printf("warning: failed to seed catalog: %v", err)
	}

	recommendSvc, err := recommend.NewService(ctx, shop, cfg.AI)
	if err != nil {
		log.Fatalf("failed to initialize recommendation service: %v", err)
	}
	if recommendSvc.ModelEnabled() {
		log.Println("recommendation model initialized successfully")
	} else {
		log.Println("Ark credentials not configured, recommendations use the catalog fallback")
	}

	geoSvc := geo.NewService(cfg.Geo)
	if !cfg.Geo.Enabled() {
		log.Println("geocoder not configured, delivery addresses keep raw coordinates")
	}

	mediaSvc, err := media.NewService(cfg.Media)
	if err != nil {
		log.Fatalf("failed to initialize media service: %v", err)
	}
	if !cfg.Media.Enabled() {
		log.Println("object storage not configured, photo URLs are kept as supplied")
	}

	registry := screens.NewRegistry()
	screens.RegisterAll(registry)

	env := &screens.Env{
		Catalog:     shop,
		Orders:      shop,
		Users:       shop,
		Recommender: recommendSvc,
		WebAppURL:   cfg.Bot.WebAppURL,
	}

	sessions := session.NewStore()
	dispatcher := dispatch.New(sessions, registry, env, shop, geoSvc, mediaSvc, cfg.Bot)

	router := handler.NewRouter(dispatcher, shop)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("bloombot listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
