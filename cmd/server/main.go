package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mafgems/api/docs"
	"github.com/mafgems/api/internal/auth"
	"github.com/mafgems/api/internal/client"
	"github.com/mafgems/api/internal/config"
	"github.com/mafgems/api/internal/generation"
	"github.com/mafgems/api/internal/handler"
	"github.com/mafgems/api/internal/logger"
	"github.com/mafgems/api/internal/metrics"
	"github.com/mafgems/api/internal/middleware"
	"github.com/mafgems/api/internal/repository"
	"github.com/mafgems/api/internal/service"
	ws "github.com/mafgems/api/internal/websocket"
)

// @title          MAFGEMS API
// @version        1.0
// @description    Jewelry presentation and video generation backed by The New Black AI.
// @host           localhost:3000
// @BasePath       /
// @schemes        http https
// @securityDefinitions.apikey BearerAuth
// @in             header
// @name           Authorization
// @description    Supabase access token in the format **Bearer &lt;token&gt;**
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("Failed to load config")
	}

	log := logger.New(cfg.Server.Env, cfg.Server.LogLevel)

	// Configure Swagger host/scheme based on environment
	if cfg.Server.ApiDomain != "" {
		docs.SwaggerInfo.Host = cfg.Server.ApiDomain
		docs.SwaggerInfo.Schemes = []string{"https"}
	} else {
		docs.SwaggerInfo.Host = "localhost:" + cfg.Server.Port
		docs.SwaggerInfo.Schemes = []string{"http"}
	}

	m := metrics.New()
	ctx := context.Background()

	// Persistence: Supabase Postgres, or in-memory rows for local development
	var store repository.Store
	if cfg.Supabase.DatabaseURL != "" {
		pg, err := repository.NewPostgresStore(ctx, cfg.Supabase.DatabaseURL)
		if err != nil {
			log.Warn().Err(err).Msg("Database not available, using in-memory store")
			store = repository.NewMemoryStore()
		} else {
			store = pg
		}
	} else {
		log.Warn().Msg("SUPABASE_DB_URL not set, using in-memory store")
		store = repository.NewMemoryStore()
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("Redis not available")
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	asynqClient := asynq.NewClient(redisOpt)

	// External clients
	newBlackClient := client.NewNewBlackClient(&cfg.NewBlack, logger.Component(log, "newblack"))
	if !newBlackClient.IsConfigured() {
		log.Warn().Msg("THE_NEW_BLACK_API_KEY not set, generations are simulated")
	}

	var storageClient client.StorageClient
	if sc, err := client.NewSupabaseStorageClient(&cfg.Supabase); err != nil {
		log.Warn().Err(err).Msg("Supabase Storage not configured, uploads return mock URLs")
	} else {
		storageClient = sc
	}

	verifier := auth.NewSupabaseVerifier(cfg.Supabase, logger.Component(log, "auth"))
	if verifier == nil {
		log.Warn().Msg("No Supabase JWT secret or JWKS issuer, authenticated routes will reject requests")
	}

	// WebSocket hub
	hub := ws.NewHub(logger.Component(log, "ws"))
	go hub.Run()

	// Generation core
	runner := generation.NewRunner(10*time.Second, logger.Component(log, "persistence"), m)
	poll := generation.PollPolicy{MaxAttempts: cfg.NewBlack.PollAttempts, Delay: cfg.NewBlack.PollInterval}
	executor := generation.NewExecutor(newBlackClient, store,
		generation.WithTimeout(cfg.NewBlack.Timeout),
		generation.WithPollPolicy(poll),
		generation.WithResultsEndpoint(cfg.NewBlack.ResultsEndpoint),
		generation.WithLogger(logger.Component(log, "generation")),
		generation.WithMetrics(m),
		generation.WithRunner(runner),
	)

	// Initialize services
	presentationService := service.NewPresentationService(executor)
	galleryService := service.NewGalleryService(store, store)
	videoService := service.NewJewelryVideoService(service.NewRedisJobStore(redisClient), asynqClient)
	uploadService := service.NewUploadService(storageClient)

	// Initialize handlers
	validate := handler.NewValidator()
	router := &handler.Router{
		Health: handler.NewHealthHandler(map[string]bool{
			"newblack": newBlackClient.IsConfigured(),
			"storage":  storageClient != nil,
			"auth":     verifier != nil,
		}, store),
		Presentation: handler.NewPresentationHandler(presentationService, log),
		Gallery:      handler.NewGalleryHandler(galleryService, log),
		Video:        handler.NewVideoHandler(videoService, hub, validate, log),
		Upload:       handler.NewUploadHandler(uploadService, log),
		Auth:         middleware.NewAuthMiddleware(verifier, logger.Component(log, "auth")),
		RateLimiter:  middleware.NewRateLimiter(middleware.NewRedisCounter(redisClient), log, m),
		Limits:       cfg.RateLimit,
		Metrics:      m,
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          handler.ErrorHandler,
		BodyLimit:             12 * 1024 * 1024,
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog(logger.Component(log, "http")))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID",
	}))

	router.Register(app)

	// Start Asynq worker server
	workerServer := newWorkerServer(cfg, redisOpt, log)
	runWorkerServer(workerServer, newWorkerMux(cfg, videoService, newBlackClient, store, hub, log, m), log)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info().Msg("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("Server shutdown error")
		}
	}()

	// Start server
	addr := ":" + cfg.Server.Port
	log.Info().Str("addr", addr).Msg("Server starting")
	if err := app.Listen(addr); err != nil {
		log.Error().Err(err).Msg("Server error")
	}

	workerServer.Shutdown()
	runner.Wait()
	hub.Stop()
	if verifier != nil {
		verifier.Close()
	}
	asynqClient.Close()
	redisClient.Close()
	store.Close()
	log.Info().Msg("Server stopped")
}
