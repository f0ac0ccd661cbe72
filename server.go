package main

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"seoscope/handlers/tools"
	"seoscope/helpers"
)

type Server struct {
	E       *echo.Echo
	Tools   *tools.Tools
	Log     *zap.Logger
	Limiter *helpers.RateLimiter
}

func NewServer(t *tools.Tools, log *zap.Logger, rateLimitPerMinute int) *Server {
	e := echo.New()

	// essential middleware only
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())

	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		E:       e,
		Tools:   t,
		Log:     log,
		Limiter: helpers.NewRateLimiter(rateLimitPerMinute, time.Minute),
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.E.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	s.E.GET("/api/v1/tools", s.Tools.List)
	s.E.POST("/api/v1/tools/:name", s.Tools.Call, s.Limiter.Middleware)
}

func (s *Server) Start(addr string) error {
	s.Log.Info("server starting", zap.String("addr", addr))
	return s.E.Start(addr)
}
