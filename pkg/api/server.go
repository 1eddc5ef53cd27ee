package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-rota/internal/config"
	"github.com/jakechorley/shift-rota/pkg/db"
)

const shutdownTimeout = 10 * time.Second

// Server serves the scheduling HTTP API
type Server struct {
	cfg     *config.Config
	store   db.RunStore
	logger  *zap.Logger
	metrics *Metrics
	router  *gin.Engine
}

// NewServer builds the router. The config supplies defaults for requests
// that do not override them.
func NewServer(cfg *config.Config, store db.RunStore, logger *zap.Logger, metrics *Metrics) *Server {
	if metrics == nil {
		metrics = NewMetrics()
	}

	s := &Server{
		cfg:     cfg,
		store:   store,
		logger:  logger,
		metrics: metrics,
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger), RequestMetrics(metrics))

	router.GET("/healthz", s.health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.POST("/schedule", s.createSchedule)
	router.GET("/runs", s.listRuns)
	router.GET("/runs/:id", s.getRun)

	s.router = router
	return s
}

// Handler returns the router as an http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
