package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-ats/internal/autosave"
	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/server/middleware"
	"github.com/jonathan/resume-ats/internal/server/ratelimit"
	"github.com/jonathan/resume-ats/internal/session"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	cfg         config.ServerConfig
	sessions    *session.Registry
	sessionOpts []session.Option
	store       autosave.Store
	closeStore  func() error
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate
}

// New creates a new server instance, opening the configured autosave backend
func New(ctx context.Context, cfg config.ServerConfig) (*Server, error) {
	store, closeStore, err := autosave.OpenStore(ctx, cfg.AutosaveBackend, cfg.BackendOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s autosave store: %w", cfg.AutosaveBackend, err)
	}

	rlConfig, err := ratelimit.LoadConfig()
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("failed to load rate limit config: %w", err)
	}

	s := newServer(cfg, store, ratelimit.NewLimiter(rlConfig))
	s.closeStore = closeStore
	return s, nil
}

// newServer wires a server around an already opened store and limiter
func newServer(cfg config.ServerConfig, store autosave.Store, limiter *ratelimit.Limiter) *Server {
	observability.InitMetrics()

	s := &Server{
		cfg:         cfg,
		store:       store,
		closeStore:  func() error { return nil },
		rateLimiter: limiter,
		validate:    newValidator(),
		sessionOpts: []session.Option{
			session.WithDelay(cfg.AnalysisDelay),
			session.WithTimeout(cfg.AnalysisTimeout),
		},
	}
	s.sessions = session.NewRegistry(session.RegistryConfig{
		MaxSessions:     cfg.MaxSessions,
		IdleTimeout:     cfg.SessionIdleTimeout,
		CleanupInterval: cfg.SessionCleanupInterval,
		OnExpire:        s.clearSessionAutosave,
	}, s.sessionOpts...)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
	return s
}

// Handler returns the fully wrapped request handler
func (s *Server) Handler() http.Handler {
	requireSession := middleware.RequireSession(s.sessions)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Template rating table
	mux.HandleFunc("GET /templates", s.handleListTemplates)
	mux.HandleFunc("GET /templates/{id}", s.handleGetTemplate)

	// Stateless analysis
	mux.HandleFunc("POST /analyze", s.handleAnalyze)

	// Session endpoints
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.Handle("DELETE /sessions/{id}", requireSession(http.HandlerFunc(s.handleDeleteSession)))
	mux.Handle("POST /sessions/{id}/analyze", requireSession(http.HandlerFunc(s.handleSessionAnalyze)))
	mux.Handle("GET /sessions/{id}/score", requireSession(http.HandlerFunc(s.handleSessionScore)))
	mux.Handle("PUT /sessions/{id}/autosave", requireSession(http.HandlerFunc(s.handlePutAutosave)))
	mux.Handle("PATCH /sessions/{id}/autosave", requireSession(http.HandlerFunc(s.handlePatchAutosave)))
	mux.Handle("GET /sessions/{id}/autosave", requireSession(http.HandlerFunc(s.handleGetAutosave)))

	return s.withRateLimit(s.withLogging(s.withMetrics(s.withCORS(mux))))
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.release()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ServerShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.release()
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.release()
	log.Println("Server stopped")
	return nil
}

// release stops background cleanup and closes the autosave store
func (s *Server) release() {
	s.sessions.Stop()
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if err := s.closeStore(); err != nil {
		log.Printf("[server] closing autosave store: %v", err)
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.CORSAllowOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
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

// statusRecorder captures the response status for metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withMetrics records request counts and latency by matched route
func (s *Server) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		observability.ObserveHTTPRequest(route, r.Method, rec.status, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
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

// errorFromErr writes err with the status HTTPStatus maps it to
func (s *Server) errorFromErr(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[server] request failed: %v", err)
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
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

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := max(1, int(info.RetryAfter.Seconds()))
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d", info.Limit, info.Remaining)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
