package server

import (
	"context"
	"net/http"
	"time"

	"github.com/vibe-gaming/dsr-connector/internal/config"
)

const readHeaderTimeout = 5 * time.Second

type Server struct {
	httpServer *http.Server
}

func NewServer(cfg config.HttpServer, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       cfg.Timeout,
			// access and erasure fan out to mailgun, give them the same budget on the way back
			WriteTimeout: cfg.Timeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}
}

// Addr is the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
