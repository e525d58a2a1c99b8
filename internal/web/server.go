// Package web serves the dashboard and the HTTP API for inspecting and
// editing corner bindings.
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hotcorners/hotcorners/internal/config"
	"github.com/hotcorners/hotcorners/internal/database"
	"github.com/hotcorners/hotcorners/internal/engine"
)

type Server struct {
	config  *config.Config
	handler *Handler
	server  *http.Server
	logger  *zap.Logger
}

func NewServer(cfg *config.Config, eng *engine.Engine, repo *database.Repository, logger *zap.Logger, customPort int) *Server {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	logger = logger.Named("web")

	handler := NewHandler(cfg, eng, repo, logger)
	mux := http.NewServeMux()
	handler.SetupRoutes(mux)

	port := cfg.Web.Port
	if customPort > 0 {
		port = customPort
	}

	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		config:  cfg,
		handler: handler,
		server:  httpServer,
		logger:  logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting web server", zap.String("addr", "http://"+s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down web server")
	return s.server.Shutdown(ctx)
}

func (s *Server) GetAddress() string {
	return s.server.Addr
}
