package mailbox

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// DirSource streams *.eml files from a directory in lexical order. It is
// used for local runs and tests, where a live IMAP server is unavailable.
type DirSource struct {
	paths  []string
	pos    int
	logger *zap.Logger
}

// OpenDir lists the .eml files under path.
func OpenDir(path string, logger *zap.Logger) (*DirSource, error) {
	paths, err := filepath.Glob(filepath.Join(path, "*.eml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list mail directory %s: %w", path, err)
	}
	sort.Strings(paths)

	logger.Info("Opened mail directory",
		zap.String("path", path),
		zap.Int("message_count", len(paths)))

	return &DirSource{
		paths:  paths,
		logger: logger,
	}, nil
}

// Next returns the next file's raw bytes, or io.EOF once all files listed
// at open time have been returned.
func (s *DirSource) Next(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pos >= len(s.paths) {
		return nil, io.EOF
	}

	path := s.paths[s.pos]
	s.pos++

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read message file %s: %w", path, err)
	}
	return raw, nil
}

// Close is a no-op for directory sources.
func (s *DirSource) Close() error {
	return nil
}
