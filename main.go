package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/wahid1099/generate-qa/completion"
	"github.com/wahid1099/generate-qa/config"
	"github.com/wahid1099/generate-qa/handlers/api"
	"github.com/wahid1099/generate-qa/logger"
	"github.com/wahid1099/generate-qa/services/qa"
	"github.com/wahid1099/generate-qa/transcript"
	"github.com/wahid1099/generate-qa/validation"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug("No .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log, err := logger.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize logger")
	}

	if !cfg.OpenAIConfigured() {
		log.Warn("OPENAI_API_KEY is not set; QA generation requests will fail")
	}
	if cfg.Transcript.Provider == config.ProviderCaptionsAPI && !cfg.YouTubeAPIConfigured() {
		log.Warn("YOUTUBE_API_KEY is not set; transcript requests will fail")
	}

	ctx := context.Background()

	provider, err := transcript.New(ctx, cfg.Transcript, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize transcript provider")
	}

	qaService := qa.NewService(
		provider,
		completion.NewOpenAIGateway(cfg.OpenAI, log),
		validation.NewValidator(cfg),
		qa.Config{
			ChunkSize:           cfg.QA.ChunkSize,
			MinTranscriptLength: cfg.QA.MinTranscriptLength,
			SystemPrompt:        cfg.OpenAI.SystemPrompt,
		},
		log,
	)

	server := api.NewServer(cfg,
		api.WithLogger(log),
		api.WithQAService(qaService),
	)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-shutdownChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.WithError(err).Error("Server shutdown error")
		}
	}()

	log.WithFields(logrus.Fields{
		"provider": cfg.Transcript.Provider,
		"model":    cfg.OpenAI.Model,
		"version":  cfg.Version,
	}).Info("Service configured")

	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("Server error")
	}

	<-stopped
	log.Info("Server stopped")
}
