package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/JulianZulFont/AppDash-2/internal/usecase"
	"go.uber.org/zap"
)

// CountdownSource reports the seconds remaining until the next price refresh.
type CountdownSource interface {
	CountdownSeconds() int
}

type Server struct {
	router    *http.ServeMux
	server    *http.Server
	service   *usecase.DashboardService
	countdown CountdownSource
	hub       *Hub
	logger    *zap.Logger
}

func NewServer(
	port int,
	service *usecase.DashboardService,
	countdown CountdownSource,
	hub *Hub,
	logger *zap.Logger,
) *Server {
	s := &Server{
		router:    http.NewServeMux(),
		service:   service,
		countdown: countdown,
		hub:       hub,
		logger:    logger,
	}
	s.routes()
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.router,
	}
	return s
}

func (s *Server) routes() {
	// Dashboard page
	s.router.HandleFunc("GET /", s.handleDashboard)

	// JSON API
	s.router.HandleFunc("GET /api/symbols", s.handleSymbols)
	s.router.HandleFunc("GET /api/price", s.handlePrice)
	s.router.HandleFunc("GET /api/candles", s.handleCandles)
	s.router.HandleFunc("GET /api/countdown", s.handleCountdown)

	// Live updates
	s.router.HandleFunc("GET /ws", s.hub.handleWS)

	// Status
	s.router.HandleFunc("GET /status", s.handleStatus)
}

func (s *Server) Start() error {
	s.logger.Info("Starting web server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.server.Shutdown(ctx)
}
