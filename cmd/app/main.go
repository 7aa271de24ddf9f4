package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/api/http"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/cache"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/config"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/db"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/queue/asynqserver"
	queueClient "github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/queue/client"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/queue/task"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/repository"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/server"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/service"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/worker"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/auth"
	emailProvider "github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/email"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/email/console"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/email/smtp"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/hash"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/logger"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/pkg/otp"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	// Dependencies
	appLogger := logger.SetupLogger(cfg.Env)

	appLogger.Info("starting expense tracker api", zap.String("env", cfg.Env))
	appLogger.Debug("debug messages are enabled")

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		appLogger.Error("mysql connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err = dbMySQL.Close(); err != nil {
			appLogger.Error("error when closing", zap.Error(err))
		}
	}()
	appLogger.Info("mysql connection done")

	redisClient, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		appLogger.Error("redis connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err = redisClient.Close(); err != nil {
			appLogger.Error("error when closing redis", zap.Error(err))
		}
	}()
	appLogger.Info("redis connection done")

	hasher := hash.NewArgon2Hasher()

	var emailSender emailProvider.Sender
	if cfg.SMTP.Configured() {
		emailSender, err = smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
		if err != nil {
			appLogger.Error("smtp sender creation failed", zap.Error(err))
			return
		}
	} else {
		// Explicit development fallback: verification codes are logged, not
		// delivered. Not to be confused with a delivery failure.
		appLogger.Warn("SMTP is not configured, running with the development-mode console sender")
		emailSender = console.NewConsoleSender()
	}

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		appLogger.Error("auth manager creation err", zap.Error(err))
		return
	}

	otpGenerator := otp.NewCryptoGenerator()

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbMySQL)
	services := service.NewServices(service.Deps{
		Config:       cfg,
		Hasher:       hasher,
		TokenManager: tokenManager,
		OtpGenerator: otpGenerator,
		EmailSender:  emailSender,
		Cache:        redisClient,
		Repos:        repos,
	})
	handlers := apiHttp.NewHandlers(services, tokenManager, cfg)

	// Background workers: asynq server + periodic verification sweep
	workers := worker.NewWorkers(worker.Deps{Repos: repos})

	asynqSrv, asynqMux := asynqserver.New(cfg.Cache, workers)
	go func() {
		if err := asynqSrv.Run(asynqMux); err != nil {
			appLogger.Error("error occurred while running asynq server", zap.Error(err))
		}
	}()

	scheduler, err := asynqserver.NewScheduler(cfg.Cache, cfg.Auth.VerificationSweepEvery)
	if err != nil {
		appLogger.Error("scheduler creation failed", zap.Error(err))
		return
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			appLogger.Error("error occurred while running scheduler", zap.Error(err))
		}
	}()

	restoreClient := queueClient.SetClient(asynq.NewClient(asynqserver.RedisOptions(cfg.Cache)))
	defer restoreClient()

	// Catch-up sweep right after boot so codes expired during downtime
	// do not wait a full interval.
	if _, err := queueClient.GetClient(context.Background()).Enqueue(task.NewSweepVerificationsTask()); err != nil {
		appLogger.Error("enqueue startup sweep failed", zap.Error(err))
	}

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	appLogger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	scheduler.Shutdown()
	asynqSrv.Shutdown()

	if err := srv.Stop(ctx); err != nil {
		appLogger.Error("failed to stop server", zap.Error(err))
	}

	appLogger.Info("app stopped")
}
