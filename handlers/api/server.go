package api

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/wahid1099/generate-qa/config"
	"github.com/wahid1099/generate-qa/errors"
	"github.com/wahid1099/generate-qa/middleware"
	"github.com/wahid1099/generate-qa/services/qa"
	"github.com/wahid1099/generate-qa/validation"
)

type Server struct {
	qa        *QAHandler
	config    *config.Config
	logger    *logrus.Logger
	server    *http.Server
	startTime time.Time
}

type ServerOption func(*Server)

// NewServer creates a new API server with the provided options
func NewServer(cfg *config.Config, opts ...ServerOption) *Server {
	s := &Server{
		config:    cfg,
		logger:    logrus.StandardLogger(),
		startTime: time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// WithQAService sets up the QA handler. Apply it after WithLogger.
func WithQAService(svc qa.Service) ServerOption {
	return func(s *Server) {
		s.qa = NewQAHandler(svc, validation.NewValidator(s.config), s.logger)
	}
}

// WithLogger sets a custom logger for the server
func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.WithField("port", s.config.ServerPort).Info("Starting server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	if s.qa != nil {
		r.HandleFunc("/generate_qa", s.qa.HandleGenerateQA).Methods(http.MethodPost)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, s.logger, errors.NotFound("Server.NotFound", nil, "Not found"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, s.logger, errors.E("Server.MethodNotAllowed", nil, "Method not allowed", http.StatusMethodNotAllowed))
	})

	return middleware.Chain(r,
		middleware.RequestID(),
		middleware.Logging(s.logger),
		middleware.Recovery(s.logger),
		middleware.CORS(s.config.CORS),
	)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "QA generation service is running",
	})
}

// handleHealth reports liveness and which upstream credentials are present.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":                 "Server is running",
		"openai_configured":      s.config.OpenAIConfigured(),
		"youtube_api_configured": s.config.YouTubeAPIConfigured(),
		"transcript_provider":    s.config.Transcript.Provider,
		"version":                s.config.Version,
		"uptime":                 time.Since(s.startTime).String(),
	}

	if s.config.Debug {
		status["goroutines"] = runtime.NumGoroutine()
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		status["memory"] = map[string]interface{}{
			"allocated": m.Alloc,
			"system":    m.Sys,
			"gc_cycles": m.NumGC,
		}
	}

	respondJSON(w, http.StatusOK, status)
}
