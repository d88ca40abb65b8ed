// Package api serves the sync API of the web app.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/ilyadubrovsky/notenmeister/internal/config"
	"github.com/ilyadubrovsky/notenmeister/internal/service"
)

const userIDKey = "userID"

type Server struct {
	echo        *echo.Echo
	subjectsSvc service.Subjects
	reportSvc   service.Report
	tokenSvc    service.Token
	cfg         config.HTTP
}

func NewServer(
	subjectsSvc service.Subjects,
	reportSvc service.Report,
	tokenSvc service.Token,
	cfg config.HTTP,
) *Server {
	s := &Server{
		echo:        echo.New(),
		subjectsSvc: subjectsSvc,
		reportSvc:   reportSvc,
		tokenSvc:    tokenSvc,
		cfg:         cfg,
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = httpErrorHandler

	s.echo.Use(middleware.Recover())
	if !cfg.DisableReqLogs {
		s.echo.Use(requestLogger())
	}

	s.echo.GET("/health", s.handleHealth)

	v1 := s.echo.Group("/v1", s.authMiddleware)
	v1.GET("/subjects", s.handleGetSubjects)
	v1.PUT("/subjects", s.handlePutSubjects)
	v1.GET("/summary", s.handleGetSummary)
	v1.GET("/export/:format", s.handleGetExport)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks until the server is shut down.
func (s *Server) Start() error {
	log.Info().Str("address", s.cfg.Address).Msg("start http server")

	err := s.echo.Start(s.cfg.Address)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("echo.Start: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("echo.Shutdown: %w", err)
	}

	return nil
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := log.Info()
			if userID, ok := c.Get(userIDKey).(int64); ok {
				event = event.Int64("user", userID)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
