package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/openjudge-io/judge-api/internal/config"
	"github.com/openjudge-io/judge-api/internal/database"
	"github.com/openjudge-io/judge-api/internal/handler"
	"github.com/openjudge-io/judge-api/internal/middleware"
	"github.com/openjudge-io/judge-api/internal/models"
	"github.com/openjudge-io/judge-api/internal/repository"
	"github.com/openjudge-io/judge-api/internal/router"
	"github.com/openjudge-io/judge-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Domain{},
		&models.DomainUser{},
		&models.ProblemSet{},
		&models.Problem{},
		&models.ProblemGroup{},
		&models.Record{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL, logger)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not configured, scoreboard caching disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	} else {
		logger.Warn().Msg("nats url not configured, domain events disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	domainRepo := repository.NewDomainRepository(db)
	problemSetRepo := repository.NewProblemSetRepository(db)
	problemRepo := repository.NewProblemRepository(db)
	recordRepo := repository.NewRecordRepository(db)
	txManager := repository.NewTxManager(db)

	events := service.NewNATSEventPublisher(natsConn, cfg.EventSubjectBase, logger)
	permissions := service.NewDomainPermissionChecker(domainRepo, logger)
	problemSetService := service.NewProblemSetService(problemSetRepo, txManager, validate, permissions, events, logger)
	scoreboardService := service.NewScoreboardService(problemSetRepo, problemRepo, recordRepo, domainRepo, redisClient, cfg.ScoreboardCacheTTL, logger)

	problemSetHandler := handler.NewProblemSetHandler(problemSetService, scoreboardService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ProblemSetHandler: problemSetHandler,
		DomainRepo:        domainRepo,
		PermissionChecker: permissions,
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
