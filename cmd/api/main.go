package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"swapdmarket/internal/adapter/api"
	"swapdmarket/internal/adapter/api/handler"
	apimiddleware "swapdmarket/internal/adapter/api/middleware"
	"swapdmarket/internal/adapter/api/router"
	"swapdmarket/internal/adapter/repository"
	"swapdmarket/internal/infrastructure/cache"
	"swapdmarket/internal/infrastructure/events"
	"swapdmarket/internal/infrastructure/firebase"
	"swapdmarket/internal/infrastructure/metrics"
	"swapdmarket/internal/infrastructure/ratelimit"
	"swapdmarket/internal/infrastructure/storage"
	"swapdmarket/internal/infrastructure/websocket"
	"swapdmarket/internal/usecase"
	"swapdmarket/pkg/config"
	"swapdmarket/pkg/logger"
	"swapdmarket/pkg/response"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: %v", err)
	}
	logger.Configure(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clients, err := firebase.NewClients(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize Firebase: %v", err)
	}
	defer clients.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, clients.Option)
	if err != nil {
		logger.Fatal("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	publisher := events.NewPublisher(cfg.NatsURL)
	defer publisher.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheusRecorder(registry)

	productRepo := repository.NewFirestoreProductRepository(clients.Firestore)
	chatRepo := repository.NewFirestoreChatRepository(clients.Firestore)
	favoriteRepo := repository.NewFirestoreFavoriteRepository(clients.Firestore)
	userRepo := repository.NewFirestoreUserRepository(clients.Firestore)
	reviewRepo := repository.NewFirestoreReviewRepository(clients.Firestore)
	channelLogoRepo := repository.NewFirestoreChannelLogoRepository(clients.Firestore)
	unreadFeed := repository.NewFirestoreUnreadFeed(clients.Firestore)
	messageLog := repository.NewRTDBMessageLog(clients.Database)
	clientState := cache.NewClientStateStore(cfg.ClientStateCacheMB)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	limiter := ratelimit.NewRateLimiter(ratelimit.DefaultLimits)
	limiter.StartCleanupRoutine(ctx.Done())

	catalogCache := usecase.NewCatalogCache()
	catalogUseCase := usecase.NewCatalogUseCase(productRepo, catalogCache, clientState, recorder, usecase.CatalogOptions{
		Limit:    cfg.CatalogLimit,
		PageSize: cfg.CatalogPageSize,
	})
	productUseCase := usecase.NewProductUseCase(productRepo, favoriteRepo, catalogCache, publisher)
	contactUseCase := usecase.NewContactUseCase(productRepo, chatRepo, messageLog, clientState, publisher, wsManager, limiter, recorder)
	favoriteUseCase := usecase.NewFavoriteUseCase(favoriteRepo, productRepo, limiter, recorder)
	channelLogoUseCase := usecase.NewChannelLogoUseCase(channelLogoRepo, productRepo, storageClient, storage.NewHTTPLogoFetcher(cfg.LogoFetchTimeout), catalogCache)
	chatUseCase := usecase.NewChatUseCase(chatRepo, messageLog)
	sellerUseCase := usecase.NewSellerUseCase(userRepo, productRepo, reviewRepo, catalogUseCase)
	notificationUseCase := usecase.NewNotificationUseCase(unreadFeed, clientState, recorder, usecase.NotificationOptions{
		Limit:     cfg.NotificationLimit,
		DismissMs: cfg.NotificationDismissMs,
	})

	// Warm the catalog; a failure here is retried on the first browse.
	if _, err := catalogUseCase.Load(ctx); err != nil {
		logger.Warn("Initial catalog load failed: %v", err)
	}

	handler.Setup(catalogUseCase, productUseCase, contactUseCase, favoriteUseCase, channelLogoUseCase, chatUseCase, sellerUseCase)

	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.IsDevelopment()
	e.HTTPErrorHandler = response.HTTPErrorHandler
	e.Validator = api.NewValidator()

	e.Use(apimiddleware.RequestID())
	e.Use(apimiddleware.RequestLogger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, apimiddleware.ClientIDHeader},
	}))
	e.Use(metrics.Middleware(recorder))

	authMiddleware := apimiddleware.NewAuthMiddleware(clients.Auth, userRepo)
	wsHandler := handler.NewWebSocketHandler(ctx, wsManager, notificationUseCase, cfg.CORSAllowedOrigins)

	router.Setup(e, authMiddleware, limiter)
	router.SetupMetricsRouter(e, registry)
	router.SetupWebSocketRouter(e, wsHandler, authMiddleware)

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
