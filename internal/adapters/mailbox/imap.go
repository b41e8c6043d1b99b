// Package mailbox provides message sources: finite, non-restartable
// streams of raw messages consumed by one pipeline run.
package mailbox

import (
	"context"
	"fmt"
	"io"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"go.uber.org/zap"

	"github.com/mikey/llm-email-triage/internal/config"
)

// IMAPSource streams messages from an IMAP folder. The UID list is fixed
// at open time; message bodies are fetched lazily one at a time.
type IMAPSource struct {
	client *imapclient.Client
	uids   []imap.UID
	pos    int
	logger *zap.Logger
}

// OpenIMAP connects and authenticates to an IMAP server, selects the
// configured folder and records the UIDs to stream.
func OpenIMAP(_ context.Context, cfg config.IMAPConfig, logger *zap.Logger) (*IMAPSource, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	var client *imapclient.Client
	var err error
	if cfg.TLS {
		client, err = imapclient.DialTLS(addr, nil)
	} else {
		client, err = imapclient.DialStartTLS(addr, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to IMAP server %s: %w", addr, err)
	}

	if err := client.Login(cfg.Username, cfg.Password).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, fmt.Errorf("IMAP authentication failed for %s: %w", cfg.Username, err)
	}

	if _, err := client.Select(cfg.Folder, nil).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, fmt.Errorf("failed to select folder %s: %w", cfg.Folder, err)
	}

	criteria := &imap.SearchCriteria{}
	if cfg.UnseenOnly {
		criteria.NotFlag = []imap.Flag{imap.FlagSeen}
	}

	searchData, err := client.UIDSearch(criteria, nil).Wait()
	if err != nil {
		_ = client.Logout().Wait()
		return nil, fmt.Errorf("IMAP search failed: %w", err)
	}

	uids := searchData.AllUIDs()
	logger.Info("Opened IMAP mailbox",
		zap.String("folder", cfg.Folder),
		zap.Int("message_count", len(uids)))

	return &IMAPSource{
		client: client,
		uids:   uids,
		logger: logger,
	}, nil
}

// Next fetches the next message's raw bytes, or io.EOF when the UID list
// recorded at open time is exhausted.
func (s *IMAPSource) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pos >= len(s.uids) {
		return nil, io.EOF
	}

	uid := s.uids[s.pos]
	s.pos++

	bodySection := &imap.FetchItemBodySection{Peek: true}
	fetchCmd := s.client.Fetch(imap.UIDSetNum(uid), &imap.FetchOptions{
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	})
	defer fetchCmd.Close()

	msg := fetchCmd.Next()
	if msg == nil {
		return nil, fmt.Errorf("message UID %d not found", uid)
	}

	buf, err := msg.Collect()
	if err != nil {
		return nil, fmt.Errorf("failed to collect message UID %d: %w", uid, err)
	}

	raw := buf.FindBodySection(bodySection)
	if raw == nil {
		return nil, fmt.Errorf("no body returned for message UID %d", uid)
	}

	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("fetch failed for message UID %d: %w", uid, err)
	}

	s.logger.Debug("Fetched message", zap.Uint32("uid", uint32(uid)), zap.Int("size", len(raw)))
	return raw, nil
}

// Close logs out from the server.
func (s *IMAPSource) Close() error {
	return s.client.Logout().Wait()
}
