package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/cominiti-api/configs"
	"github.com/maheshrc27/cominiti-api/internal/api"
	"github.com/maheshrc27/cominiti-api/internal/api/handlers"
	"github.com/maheshrc27/cominiti-api/internal/api/middleware"
	job "github.com/maheshrc27/cominiti-api/internal/jobs"
	"github.com/maheshrc27/cominiti-api/internal/migrations"
	"github.com/maheshrc27/cominiti-api/internal/queue"
	"github.com/maheshrc27/cominiti-api/internal/repository"
	"github.com/maheshrc27/cominiti-api/internal/repository/localdb"
	"github.com/maheshrc27/cominiti-api/internal/service"
	"github.com/maheshrc27/cominiti-api/pkg/logger"
	"github.com/robfig/cron"
	"go.uber.org/zap"
)

type repositories struct {
	users        repository.UserRepository
	profiles     repository.ProfileRepository
	posts        repository.PostRepository
	apiKeys      repository.ApiKeyRepository
	brands       repository.BrandRepository
	campaigns    repository.CampaignRepository
	applications repository.ApplicationRepository
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	zapLogger := logger.New(cfg.LogLevel, cfg.Environment)
	defer zapLogger.Sync()
	zap.ReplaceGlobals(zapLogger)

	if cfg.SecretKey == "" {
		zap.L().Fatal("SECRET_KEY must be set")
	}

	ctx := context.Background()

	var db *sql.DB
	var repos repositories
	if cfg.UseLocalDB() {
		zap.L().Info("using local flat-file database", zap.String("path", cfg.LocalDBPath))
		repos = localRepositories(localdb.New(cfg.LocalDBPath))
	} else {
		var err error
		db, err = sql.Open("postgres", cfg.PostgresURI)
		if err != nil {
			zap.L().Fatal("failed to connect to database", zap.Error(err))
		}
		if err := db.Ping(); err != nil {
			zap.L().Fatal("database is unreachable", zap.Error(err))
		}
		if err := migrations.Run(ctx, db); err != nil {
			zap.L().Fatal("failed to apply migrations", zap.Error(err))
		}
		repos = postgresRepositories(db)
	}

	generator, err := service.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		zap.L().Fatal("failed to create text generator", zap.Error(err))
	}
	storage, err := service.NewR2Storage(ctx, cfg)
	if err != nil {
		zap.L().Fatal("failed to create object storage", zap.Error(err))
	}

	authService := service.NewAuthService(*cfg, repos.users, repos.profiles)
	userService := service.NewUserService(repos.users, repos.profiles)
	apiKeyService := service.NewApiKeyService(repos.apiKeys)
	instagramService := service.NewInstagramService(*cfg, service.NewInstagramClient(*cfg, nil), repos.profiles, repos.posts)
	aiService := service.NewAIService(generator, repos.profiles)
	cardService := service.NewCardService(repos.profiles)
	marketplaceService := service.NewMarketplaceService(repos.users, repos.profiles, repos.brands, repos.campaigns, repos.applications, storage)

	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    10 * 1024 * 1024, // 10 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				zap.L().Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)
	api.RegisterRoutes(app, authMiddleware.AuthMiddleware(), api.Handlers{
		Auth:      handlers.NewAuthHandler(*cfg, authService),
		Instagram: handlers.NewInstagramHandler(instagramService, *cfg),
		User:      handlers.NewUserHandler(userService),
		ApiKeys:   handlers.NewApiKeyHandler(apiKeyService),
		AI:        handlers.NewAIHandler(aiService),
		Card:      handlers.NewCardHandler(cardService),
		Brand:     handlers.NewBrandHandler(marketplaceService),
		Creator:   handlers.NewCreatorHandler(marketplaceService),
	})

	// queue
	var enqueuer job.SyncEnqueuer
	var worker *asynq.Server
	if cfg.RedisURI != "" {
		redisConn, err := asynq.ParseRedisURI(cfg.RedisURI)
		if err != nil {
			zap.L().Fatal("invalid REDIS_URI", zap.Error(err))
		}
		client := asynq.NewClient(redisConn)
		defer client.Close()
		enqueuer = queue.NewProducer(client)

		worker = asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})
		queueW := queue.NewQueue(instagramService)
		go func() {
			zap.L().Info("starting the asynq server")
			if err := worker.Run(queueW.Mux()); err != nil {
				zap.L().Fatal("could not start asynq server", zap.Error(err))
			}
		}()
	}

	// cron jobs
	refreshTokenJob := job.NewTokenRefreshJob(repos.profiles, instagramService, enqueuer)
	c := cron.New()
	c.Schedule(cron.Every(service.RefreshInterval), refreshTokenJob)
	c.Start()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zap.L().Fatal("failed to start server", zap.Error(err))
		}
	}()
	zap.L().Info("server is running", zap.String("port", cfg.Port))

	gracefulShutdown(app, c, worker, db)
}

func localRepositories(store *localdb.Store) repositories {
	return repositories{
		users:        localdb.NewUserRepository(store),
		profiles:     localdb.NewProfileRepository(store),
		posts:        localdb.NewPostRepository(store),
		apiKeys:      localdb.NewApiKeyRepository(store),
		brands:       localdb.NewBrandRepository(store),
		campaigns:    localdb.NewCampaignRepository(store),
		applications: localdb.NewApplicationRepository(store),
	}
}

func postgresRepositories(db *sql.DB) repositories {
	return repositories{
		users:        repository.NewUserRepository(db),
		profiles:     repository.NewProfileRepository(db),
		posts:        repository.NewPostRepository(db),
		apiKeys:      repository.NewApiKeyRepository(db),
		brands:       repository.NewBrandRepository(db),
		campaigns:    repository.NewCampaignRepository(db),
		applications: repository.NewApplicationRepository(db),
	}
}

func closeDB(db *sql.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		zap.L().Error("failed to close database", zap.Error(err))
		return
	}
	zap.L().Info("database connection closed")
}

func gracefulShutdown(app *fiber.App, c *cron.Cron, worker *asynq.Server, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	zap.L().Info("shutting down server")

	c.Stop()
	if worker != nil {
		worker.Shutdown()
	}
	if err := app.Shutdown(); err != nil {
		zap.L().Error("failed to shut down server", zap.Error(err))
	}

	closeDB(db)
	zap.L().Info("server shutdown complete")
}
