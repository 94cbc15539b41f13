package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"tcg-card-studio/docs"
	"tcg-card-studio/internal/cache"
	"tcg-card-studio/internal/config"
	"tcg-card-studio/internal/database"
	"tcg-card-studio/internal/events"
	"tcg-card-studio/internal/fetch"
	"tcg-card-studio/internal/genai"
	"tcg-card-studio/internal/handlers"
	"tcg-card-studio/internal/logging"
	"tcg-card-studio/internal/models"
	"tcg-card-studio/internal/services"
	"tcg-card-studio/internal/store"
	"tcg-card-studio/internal/supabase"
)

const shutdownTimeout = 30 * time.Second

// cardBackend is what the server needs from a card store beyond the service
// contract.
type cardBackend interface {
	services.CardStore
	handlers.Pinger
}

func runServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, cfg.Environment)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	configureSwagger(cfg)

	cards, profiles, closeStores, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStores()

	uploads, closeCache, err := openUploadCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	blobs := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
	fetcher := fetch.New(cfg.AllowedDownloadHosts(), 2*time.Minute)
	hub := events.NewHub()

	creds := genai.NewCredentialResolver(profiles, map[models.Provider]string{
		models.ProviderImage:  cfg.GenAIDefaultImageKey,
		models.ProviderVision: cfg.GenAIDefaultVisionKey,
		models.ProviderVideo:  cfg.GenAIDefaultVideoKey,
	}, logger)
	gateway := genai.NewGateway(
		genai.NewClient(cfg.GenAIAPIBaseURL, genai.WithPollInterval(cfg.VideoPollInterval)),
		creds,
		genai.ModelConfig{Image: cfg.GenAIImageModel, Vision: cfg.GenAIVisionModel, Video: cfg.GenAIVideoModel},
		logger,
	)

	cardService := services.NewCardService(cards, blobs, uploads, cfg.ImageStorageMode, logger)
	videoService := services.NewVideoService(cards, blobs, gateway, fetcher, hub, cfg.VideoGenerationTimeout, logger)
	profileService := services.NewProfileService(profiles, logger)

	router := handlers.NewRouter(cfg, logger, handlers.Router{
		Health:   handlers.NewHealthHandler(cards),
		Cards:    handlers.NewCardsHandler(cardService, logger),
		Generate: handlers.NewGenerateHandler(gateway, logger),
		Video:    handlers.NewVideoHandler(videoService, hub, logger),
		Profile:  handlers.NewProfileHandler(profileService, logger),
		Download: handlers.NewDownloadHandler(fetcher, logger),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment, "image_storage", cfg.ImageStorageMode)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}

	// In-flight video jobs carry their own deadline and always end in a
	// terminal state, so waiting for them is bounded.
	videoService.Wait()
	logger.Info("shutdown complete")
	return nil
}

// openStores picks Postgres when DATABASE_URL is set and the in-memory store
// otherwise. Migrations run on startup against Postgres.
func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cardBackend, services.ProfileStore, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, cards and profiles are kept in memory")
		mem := store.NewMemoryStore()
		return mem, mem, func() {}, nil
	}

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	applied, err := database.NewMigrator(db, logger).Run(ctx)
	if err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("migrations complete", "applied", len(applied))

	client, err := supabase.NewClient(cfg)
	if err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}

	cards := supabase.NewDatabaseClient(db)
	return cards, client.Profiles(), func() { _ = cards.Close() }, nil
}

func openUploadCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cache.URLCache, func(), error) {
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisFromURL(ctx, cfg.RedisURL, cfg.UploadCacheTTL, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("upload cache: redis")
		return redisCache, func() { _ = redisCache.Close() }, nil
	}

	lru, err := cache.NewLRU(cfg.UploadCacheSize)
	if err != nil {
		return nil, nil, err
	}
	return lru, func() {}, nil
}

func configureSwagger(cfg *config.Config) {
	if cfg.BaseURL == "" {
		return
	}
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return
	}
	docs.SwaggerInfo.Host = baseURL.Host
	if baseURL.Scheme == "https" {
		docs.SwaggerInfo.Schemes = []string{"https", "http"}
	} else {
		docs.SwaggerInfo.Schemes = []string{"http", "https"}
	}
}
