package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/muzamilsyed/aynstyn/internal/db"
	"github.com/muzamilsyed/aynstyn/internal/llm"
	"github.com/muzamilsyed/aynstyn/internal/server/ratelimit"
	"github.com/muzamilsyed/aynstyn/internal/session"
	"github.com/muzamilsyed/aynstyn/internal/speech"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	client      llm.Client
	db          *db.DB
	transcriber speech.Transcriber
	sessions    session.LanguageStore
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate
}

// Config holds server configuration
type Config struct {
	Port          int
	APIKey        string
	DatabaseURL   string // empty disables persistence
	RedisURL      string // empty disables session language defaults
	SpeechEnabled bool
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	ctx := context.Background()

	client, err := llm.NewClient(ctx, nil, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	s := &Server{
		client:   client,
		sessions: session.NoopLanguageStore{},
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	// Persistence and session defaults are optional; the pipeline works
	// without either.
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.db = database
	}
	if cfg.RedisURL != "" {
		sessions, err := session.NewRedisLanguageStore(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		s.sessions = sessions
	}
	if cfg.SpeechEnabled {
		transcriber, err := speech.NewGoogleTranscriber(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create transcriber: %w", err)
		}
		s.transcriber = transcriber
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /assess", s.handleAssess)
	mux.HandleFunc("POST /topics/explain", s.handleExplainTopic)
	mux.HandleFunc("GET /timeline", s.handleTimeline)
	mux.HandleFunc("GET /assessments", s.handleListAssessments)
	mux.HandleFunc("GET /assessments/{id}", s.handleGetAssessment)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // assessments run several model calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.close()
	log.Println("Server stopped")
	return nil
}

func (s *Server) close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.db != nil {
		s.db.Close()
	}
	if closer, ok := s.sessions.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	if s.transcriber != nil {
		_ = s.transcriber.Close()
	}
	if s.client != nil {
		_ = s.client.Close()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept-Language")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// Uses the IP address from RemoteAddr; X-Forwarded-For is not trusted here.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())+1))
	s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
		"error":       "rate_limit_exceeded",
		"retry_after": info.RetryAfter.Seconds(),
	})
}
