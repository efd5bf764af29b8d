// Package server provides the Career Quest HTTP REST API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/careerforward/career-quest/internal/config"
	"github.com/careerforward/career-quest/internal/server/middleware"
	"github.com/careerforward/career-quest/internal/server/ratelimit"
)

// Deps are the collaborators the API is built from. Parser and RateLimiter are optional.
type Deps struct {
	Store       Store
	Scorer      Scorer
	Parser      ResumeParser
	JWT         *config.JWTConfig
	Password    *config.PasswordConfig
	RateLimiter *ratelimit.Limiter
	Logger      *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	store           Store
	scorer          Scorer
	parser          ResumeParser
	rateLimiter     *ratelimit.Limiter
	jwtService      *JWTService
	userService     *UserService
	authHandler     *AuthHandler
	logger          *zap.Logger
}

// New creates a new server instance
func New(cfg config.ServerConfig, deps Deps) (*Server, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if deps.Scorer == nil {
		return nil, fmt.Errorf("scorer is required")
	}
	if deps.JWT == nil || deps.Password == nil {
		return nil, fmt.Errorf("jwt and password configs are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		shutdownTimeout: cfg.ShutdownTimeout,
		store:           deps.Store,
		scorer:          deps.Scorer,
		parser:          deps.Parser,
		rateLimiter:     deps.RateLimiter,
		logger:          logger,
	}
	s.userService = NewUserService(deps.Store, deps.Password, logger)
	s.jwtService = NewJWTService(deps.JWT)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService, logger)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(cfg.AllowedOrigin),
		ReadTimeout:  orDefault(cfg.ReadTimeout, 30*time.Second),
		WriteTimeout: orDefault(cfg.WriteTimeout, 120*time.Second),
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler wrapped in CORS, request logging and rate limiting.
func (s *Server) Handler(allowedOrigin string) http.Handler {
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	protected := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("PUT /auth/password", protected(s.authHandler.UpdatePassword))

	mux.Handle("GET /users/me", protected(s.handleGetMe))
	mux.Handle("GET /users/me/resume", protected(s.handleGetResume))
	mux.Handle("PUT /users/me/resume", protected(s.handleSaveResume))
	mux.Handle("POST /users/me/resume/parse", protected(s.handleParseResume))

	mux.Handle("POST /scores", protected(s.handleCreateScore))
	mux.Handle("GET /scores", protected(s.handleListScores))
	mux.Handle("GET /scores/latest", protected(s.handleLatestScore))

	mws := []middleware.Func{
		middleware.CORS(allowedOrigin),
		middleware.RequestLogger(s.logger),
	}
	if s.rateLimiter != nil {
		mws = append(mws, s.withRateLimit)
	}
	return middleware.Chain(mux, mws...)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), orDefault(s.shutdownTimeout, 30*time.Second))
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	s.logger.Info("server stopped")
	return nil
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth reports liveness and database reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// serviceError maps err to its status. Internal errors are logged and never echoed.
func (s *Server) serviceError(w http.ResponseWriter, op string, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", zap.Error(err))
		errorResponse(w, status, "Internal server error")
		return
	}
	if status == http.StatusBadGateway {
		s.logger.Warn(op+" upstream failure", zap.Error(err))
	}
	errorResponse(w, status, err.Error())
}

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// errorResponse writes an error JSON response
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID uses the IP from RemoteAddr. Forwarded headers are not trusted.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Seconds())
		if secs < 1 {
			secs = 1
		}
		response["retry_after"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}

	s.logger.Info("rate limit exceeded",
		zap.String("client", extractClientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit),
	)
	jsonResponse(w, http.StatusTooManyRequests, response)
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
