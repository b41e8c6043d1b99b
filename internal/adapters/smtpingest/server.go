package smtpingest

import (
	"context"
	"io"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/core"
)

// Server accepts messages over SMTP and feeds them into the triage pipeline.
// It is intended to sit behind a relay that forwards a copy of inbound mail.
type Server struct {
	service    *core.TriageService
	logger     *zap.Logger
	listenAddr string
	domain     string
	timeout    time.Duration
	server     *smtp.Server
}

// NewServer creates a new SMTP ingestion server
func NewServer(
	service *core.TriageService,
	logger *zap.Logger,
	listenAddr string,
	domain string,
	timeout time.Duration,
) *Server {
	if domain == "" {
		domain = "localhost"
	}
	return &Server{
		service:    service,
		logger:     logger,
		listenAddr: listenAddr,
		domain:     domain,
		timeout:    timeout,
	}
}

// Start starts the SMTP server in a goroutine
func (s *Server) Start() error {
	s.server = smtp.NewServer(&smtpBackend{ingest: s})

	s.server.Addr = s.listenAddr
	s.server.Domain = s.domain
	s.server.ReadTimeout = 30 * time.Second
	s.server.WriteTimeout = 30 * time.Second
	s.server.MaxMessageBytes = 30 * 1024 * 1024 // 30MB
	s.server.MaxRecipients = 50
	s.server.AllowInsecureAuth = true

	s.logger.Info("SMTP ingestion server starting", zap.String("address", s.listenAddr))

	go func() {
		if err := s.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				s.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the SMTP server
func (s *Server) Stop() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	ingest *Server
}

func (b *smtpBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{ingest: b.ingest}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	ingest *Server
	sender string
}

func (s *smtpSession) Reset() {
	s.sender = ""
}

func (s *smtpSession) AuthPlain(_ []byte) error {
	return smtp.ErrAuthUnsupported
}

func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	return nil
}

// Data reads the full message and runs it through the triage pipeline.
// Processing failures are logged but never bounce the message.
func (s *smtpSession) Data(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		s.ingest.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.ingest.timeout)
	defer cancel()

	record, err := s.ingest.service.ProcessMessage(ctx, raw)
	if err != nil {
		s.ingest.logger.Error("Failed to process message",
			zap.String("sender", s.sender),
			zap.Error(err))
		return nil
	}
	if record == nil {
		s.ingest.logger.Debug("Message dropped as duplicate", zap.String("sender", s.sender))
		return nil
	}

	s.ingest.logger.Info("Processed message",
		zap.String("sender", record.Sender),
		zap.String("intent", string(record.Intent)),
		zap.String("priority", string(record.Priority)))
	return nil
}

func (s *smtpSession) Logout() error {
	return nil
}
