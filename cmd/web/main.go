package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/indigoandlavender/slow-morocco-6/internal/events"
	"github.com/indigoandlavender/slow-morocco-6/internal/glossary"
	"github.com/indigoandlavender/slow-morocco-6/internal/handlers"
	"github.com/indigoandlavender/slow-morocco-6/internal/i18n"
	"github.com/indigoandlavender/slow-morocco-6/internal/linker"
	"github.com/indigoandlavender/slow-morocco-6/internal/platform/config"
	"github.com/indigoandlavender/slow-morocco-6/internal/platform/httpx"
	"github.com/indigoandlavender/slow-morocco-6/internal/platform/observability"
	"github.com/indigoandlavender/slow-morocco-6/internal/platform/secrets"
	"github.com/indigoandlavender/slow-morocco-6/internal/sheets"
	"github.com/indigoandlavender/slow-morocco-6/internal/snapshot"
	"github.com/indigoandlavender/slow-morocco-6/internal/stories"
)

func main() {
	ctx := context.Background()

	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("web")
	ctx = observability.WithLogger(ctx, logger)

	lookup, err := config.Lookup()
	if err != nil {
		logger.Fatal("failed to read environment values", zap.Error(err))
	}
	projectID, _ := lookup("SECRETS_PROJECT_ID")
	fallbackFile, _ := lookup("SECRETS_FALLBACK_FILE")

	fetcherOpts := []secrets.Option{
		secrets.WithLogger(logger.Named("secrets")),
		secrets.WithProject(projectID),
	}
	if fallbackFile != "" {
		fetcherOpts = append(fetcherOpts, secrets.WithFallbackFile(fallbackFile))
	}
	fetcher, err := secrets.NewFetcher(ctx, fetcherOpts...)
	if err != nil {
		logger.Fatal("failed to initialise secret fetcher", zap.Error(err))
	}
	defer func() {
		if err := fetcher.Close(); err != nil {
			logger.Warn("secret fetcher close error", zap.Error(err))
		}
	}()

	cfg, err := config.Load(ctx, config.WithSecretResolver(fetcher))
	if err != nil {
		var invalid *config.ValidationError
		if errors.As(err, &invalid) {
			logger.Fatal("invalid configuration", zap.Strings("fields", invalid.Fields()))
		}
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	var source *sheets.Client
	sheetsClient, err := sheets.New(ctx, cfg.Sheets.SpreadsheetID,
		sheets.WithCredentials(cfg.Sheets.Credentials),
		sheets.WithTimeout(cfg.Sheets.Timeout),
		sheets.WithLogger(logger.Named("sheets")),
	)
	switch {
	case errors.Is(err, sheets.ErrNoCredentials):
		logger.Warn("sheets credentials not configured; serving built-in content")
	case err != nil:
		logger.Error("failed to initialise sheets client; serving built-in content", zap.Error(err))
	default:
		source = sheetsClient
	}

	eventOpts := []events.Option{
		events.WithTab(cfg.Sheets.EventsTab),
		events.WithCacheTTL(cfg.Content.CacheTTL),
		events.WithLogger(logger.Named("events")),
	}
	storyOpts := []stories.Option{
		stories.WithTabs(cfg.Sheets.StoriesTab, cfg.Sheets.StoryImagesTab),
		stories.WithCacheTTL(cfg.Content.CacheTTL),
		stories.WithLogger(logger.Named("stories")),
	}
	if source != nil {
		eventOpts = append(eventOpts, events.WithRowSource(source))
		storyOpts = append(storyOpts, stories.WithRowSource(source))
	}

	var healthOpts []handlers.HealthOption
	if cfg.Snapshot.DSN != "" {
		store, err := snapshot.Open(ctx, cfg.Snapshot.DSN, snapshot.WithLogger(logger.Named("snapshot")))
		if err != nil {
			logger.Fatal("failed to open snapshot store", zap.Error(err))
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Warn("snapshot close error", zap.Error(err))
			}
		}()
		eventOpts = append(eventOpts, events.WithSnapshotStore(store))
		healthOpts = append(healthOpts, handlers.WithReadinessCheck("snapshot", store.Ping))
	}

	g := glossary.Default()
	termLinker := linker.New(g, glossary.DefaultVariants())
	storyOpts = append(storyOpts, stories.WithRenderer(stories.NewRenderer(termLinker)))

	eventService := events.NewService(eventOpts...)
	storyService := stories.NewService(storyOpts...)

	bundle, err := i18n.Default(cfg.Site.DefaultLocale, cfg.Site.Locales)
	if err != nil {
		logger.Fatal("failed to load locales", zap.Error(err))
	}

	pages, err := handlers.NewPageHandlers(bundle, eventService,
		handlers.WithSite(handlers.Site{Name: cfg.Site.Name, BaseURL: cfg.Site.BaseURL}),
		handlers.WithStories(storyService),
		handlers.WithGlossary(g),
		handlers.WithTextLinker(termLinker),
	)
	if err != nil {
		logger.Fatal("failed to initialise pages", zap.Error(err))
	}

	router := handlers.NewRouter(
		handlers.WithMiddlewares(
			observability.InjectLoggerMiddleware(logger.Named("http")),
			observability.RequestLoggerMiddleware(),
			observability.RecoveryMiddleware(func(w http.ResponseWriter, r *http.Request) {
				httpx.WriteError(r.Context(), w, httpx.Internal("internal server error"))
			}),
		),
		handlers.WithHealthHandlers(handlers.NewHealthHandlers(healthOpts...)),
		handlers.WithAPIRoutes(handlers.NewAPIHandlers(eventService, g).Routes),
		handlers.WithPageRoutes(pages.Routes),
		handlers.WithNotFound(pages.NotFound),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("festivals site listening",
			zap.Bool("sheets", source != nil),
			zap.Bool("snapshot", cfg.Snapshot.DSN != ""),
			zap.Strings("locales", bundle.Ordered()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
