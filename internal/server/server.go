// Package server exposes the booking facade over HTTP. It hosts the
// availability and appointment contracts consumed by booking flows; all
// scheduling logic stays in the core packages.
package server

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jcanete/agendum/internal/availability"
	"github.com/jcanete/agendum/internal/config"
	"github.com/jcanete/agendum/internal/schedule"
)

// Server wires the repository and business window behind an echo instance.
type Server struct {
	echo   *echo.Echo
	repo   schedule.Repository
	window availability.Window
}

// New creates a Server with routes registered.
func New(repo schedule.Repository, cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	s := &Server{
		echo: e,
		repo: repo,
		window: availability.Window{
			OpenMinutes:  cfg.OpenMinutes(),
			CloseMinutes: cfg.CloseMinutes(),
			StepMinutes:  cfg.Business.StepMinutes,
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/healthz", s.health)

	g := s.echo.Group("/api/v1")
	g.GET("/availability", s.getAvailability)
	g.GET("/appointments", s.listAppointments)
	g.POST("/appointments", s.createAppointment)
	g.PATCH("/appointments/:id/move", s.moveAppointment)
	g.PATCH("/appointments/:id/resize", s.resizeAppointment)
	g.PATCH("/appointments/:id/status", s.setStatus)
}

// Start begins serving on the given address, blocking until shutdown.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying echo instance for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
