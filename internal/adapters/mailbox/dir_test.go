package mailbox

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeEML(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestDirSourceReadsInOrder(t *testing.T) {
	dir := t.TempDir()
	writeEML(t, dir, "b.eml", "second message")
	writeEML(t, dir, "a.eml", "first message")
	writeEML(t, dir, "notes.txt", "ignored")

	src, err := OpenDir(dir, zap.NewNop())
	require.NoError(t, err)
	defer src.Close()

	ctx := context.Background()

	raw, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first message", string(raw))

	raw, err = src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second message", string(raw))

	_, err = src.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestDirSourceEmptyDir(t *testing.T) {
	src, err := OpenDir(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	defer src.Close()

	_, err = src.Next(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}
