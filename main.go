package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"wellbot/internal/chat"
	"wellbot/internal/completion_client"
	"wellbot/internal/config"
	"wellbot/internal/handler"
	"wellbot/internal/knowledge"
	"wellbot/internal/notifier"
	"wellbot/internal/repository"
	"wellbot/internal/responder"
	"wellbot/internal/risk"
	"wellbot/internal/server"
	"wellbot/internal/service"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Secrets come from the environment; .env is optional.
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using process environment")
	}

	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Knowledge table: absence degrades to an empty base, never fatal.
	kb := knowledge.Load(cfg.Knowledge.CSVPath, logger)

	completer := completion_client.NewClient(
		cfg.Groq.BaseURL,
		cfg.Groq.APIKey,
		cfg.Groq.Model,
		cfg.Groq.MaxTokens,
		cfg.Groq.Temperature,
	)
	if cfg.Groq.APIKey == "" {
		logger.Warn("GROQ_API_KEY not set - replies will fall back to the fixed message")
	}

	scorer := risk.NewScorer(cfg.Risk.KeywordWeight, logger)
	respond := responder.NewResponder(completer, kb, logger)

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Alert transports are both optional; the notifier degrades to
	// log-and-return-false when none is configured.
	var transports []notifier.Transport
	if email := notifier.NewEmailTransport(
		cfg.Alerts.Email.SMTPHost,
		cfg.Alerts.Email.SMTPPort,
		cfg.Alerts.Email.SMTPUsername,
		cfg.Alerts.Email.SMTPPassword,
		cfg.Alerts.Email.From,
		cfg.Alerts.Email.CounselorTo,
	); email != nil {
		transports = append(transports, email)
	}

	telegram, err := notifier.NewTelegramTransport(cfg.Alerts.Telegram.BotToken, cfg.Alerts.Telegram.ChatID, logger)
	if err != nil {
		logger.Warn("Failed to initialize Telegram alerts, continuing without them", zap.Error(err))
		telegram = nil
	}
	if telegram != nil {
		transports = append(transports, telegram)
		go func() {
			if err := telegram.Start(ctx); err != nil {
				logger.Error("Telegram alert bot failed", zap.Error(err))
			}
		}()
	}

	alerts := notifier.NewNotifier(cfg.Risk.AlertThreshold, logger, transports...)

	sessions := chat.NewSessionStore()
	pipeline := chat.NewPipeline(scorer, respond, alerts, sessions, logger)

	log := logrus.New()
	chatHandler := handler.NewChatHandler(pipeline, sessions, logger)

	// Authenticated mode is a capability flag: without it the service
	// runs anonymous and never touches the database.
	var authHandler handler.AuthHandler
	var jwtSecret []byte
	if cfg.Auth.Enabled {
		db, err := repository.NewPostgresDB(cfg.Auth.DatabaseURL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to user store database", zap.Error(err))
		}
		defer db.Close()

		repository.MigrateDB(db, logger)

		userRepo := repository.NewUserRepository(db, log)
		authService := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, logger)
		authHandler = handler.NewAuthHandler(authService, log)
		jwtSecret = authService.JWTSecret()
	}

	srv := server.NewServer(chatHandler, authHandler, jwtSecret, log, logger)
	go srv.Run(cfg.Server.Port)

	<-ctx.Done()
	logger.Info("Application stopped.")
}
