package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/murmurapp/murmur/internal/config"
	"github.com/murmurapp/murmur/internal/database"
	"github.com/murmurapp/murmur/internal/email"
	"github.com/murmurapp/murmur/internal/handlers"
	"github.com/murmurapp/murmur/internal/repositories"
	"github.com/murmurapp/murmur/internal/services"
)

func main() {
	ctx := context.Background()

	godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Initialize database connections
	postgresPool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to create postgres pool", zap.Error(err))
	}
	defer postgresPool.Close()

	if err := database.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatal("Failed to create redis client", zap.Error(err))
	}
	defer redisClient.Close()

	// Repositories
	userRepo := repositories.NewPostgresUserRepository(postgresPool)
	messageRepo := repositories.NewPostgresMessageRepository(postgresPool)
	sessionRepo := repositories.NewRedisSessionRepository(redisClient)

	// Collaborators
	sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	if err != nil {
		logger.Fatal("Failed to create mail client", zap.Error(err))
	}

	var suggest handlers.Suggester
	if cfg.GeminiAPIKey != "" {
		suggestService, err := services.NewSuggestService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Fatal("Failed to create suggest service", zap.Error(err))
		}
		suggest = suggestService
	} else {
		logger.Warn("GEMINI_API_KEY not set, suggestions endpoint disabled")
	}

	// Services
	accountService := services.NewAccountService(userRepo, sender, logger)
	inboxService := services.NewInboxService(userRepo, messageRepo, logger)
	authService := services.NewAuthService(userRepo, sessionRepo, cfg.JWTSecret, cfg.JWTExpiry)

	handler := handlers.NewHandler(accountService, inboxService, authService, suggest, logger)

	// Start Server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: handler.Routes(),
	}

	// graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	logger.Info("Starting server", zap.String("port", cfg.ServerPort))
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal("Server error", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
