// Package handlers provides the HTTP server for the dog registry, bridging
// the transport layer and business logic and translating between JSON
// documents and domain models.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gartstein/dogs/internal/dogs/auth"
	_ "github.com/gartstein/dogs/internal/dogs/docs"
	"github.com/gartstein/dogs/internal/dogs/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// RouterOptions configures the cross-cutting parts of the router.
type RouterOptions struct {
	JWTSecret string
	Metrics   *metrics.HTTPMetrics
	Gatherer  prometheus.Gatherer
	Logger    *zap.Logger
}

// NewRouter wires middleware, operational endpoints and the dog routes.
func NewRouter(h *DogHandler, opts RouterOptions) http.Handler {
	logger := opts.Logger.Named("http")

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(logger))
	r.Use(middleware.Recoverer)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	r.Use(auth.Middleware(opts.JWTSecret, logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(opts.Gatherer))
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("doc.json")))

	h.RegisterRoutes(r)
	return r
}

func accessLog(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

// Server owns the HTTP listener.
type Server struct {
	httpServer   *http.Server
	listener     net.Listener
	logger       *zap.Logger
	httpEndpoint string
	errChan      chan error
}

// NewServer constructs a Server listening on httpPort. Port 0 picks a free port.
func NewServer(httpPort int, handler http.Handler, logger *zap.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
		},
		logger:       logger.Named("server"),
		httpEndpoint: fmt.Sprintf(":%d", httpPort),
		errChan:      make(chan error, 1),
	}
}

// Start binds the listener and serves in the background. Bind errors are
// returned; later serve errors are delivered on Errors.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.httpEndpoint)
	if err != nil {
		return fmt.Errorf("HTTP listen error: %w", err)
	}
	s.listener = lis
	s.logger.Info("Starting HTTP server", zap.String("endpoint", lis.Addr().String()))

	go func() {
		if err := s.httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errChan <- fmt.Errorf("HTTP serve error: %w", err)
		}
		close(s.errChan)
	}()
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Errors yields a serve error, if any, and is closed when serving stops.
func (s *Server) Errors() <-chan error {
	return s.errChan
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() {
	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	s.logger.Info("Server stopped")
}
