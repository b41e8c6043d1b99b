package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/adapters/store"
	"github.com/mikey/llm-email-triage/internal/core"
)

// Server exposes the triage records over HTTP
type Server struct {
	echo       *echo.Echo
	repo       core.EmailRepository
	logger     *zap.Logger
	listenAddr string
}

// feedbackRequest is the body of POST /feedback
type feedbackRequest struct {
	ID       int64  `json:"id"`
	Feedback string `json:"feedback"`
}

// NewServer creates a new HTTP API server
func NewServer(repo core.EmailRepository, logger *zap.Logger, listenAddr string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:       e,
		repo:       repo,
		logger:     logger,
		listenAddr: listenAddr,
	}

	e.GET("/health", s.handleHealth)
	e.GET("/emails", s.handleListEmails)
	e.POST("/feedback", s.handleFeedback)

	return s
}

// Start starts the HTTP server in a goroutine
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", zap.String("address", s.listenAddr))

	go func() {
		if err := s.echo.Start(s.listenAddr); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("HTTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListEmails(c echo.Context) error {
	records, err := s.repo.List(c.Request().Context())
	if err != nil {
		s.logger.Error("Failed to list email records", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list emails"})
	}
	if records == nil {
		records = []*core.EmailRecord{}
	}
	return c.JSON(http.StatusOK, records)
}

func (s *Server) handleFeedback(c echo.Context) error {
	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.ID <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "id is required"})
	}

	err := s.repo.UpdateFeedback(c.Request().Context(), req.ID, req.Feedback)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "email record not found"})
		}
		s.logger.Error("Failed to update feedback",
			zap.Int64("id", req.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to update feedback"})
	}

	s.logger.Info("Recorded feedback",
		zap.Int64("id", req.ID),
		zap.String("feedback", req.Feedback))
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
