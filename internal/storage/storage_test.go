package storage

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectName(t *testing.T) {
	now := time.UnixMilli(1718000000123)
	name := ObjectName("informe.final.PDF", now)
	assert.Regexp(t, regexp.MustCompile(`^1718000000123-[0-9a-f]{8}\.PDF$`), name)

	assert.Regexp(t, regexp.MustCompile(`^1718000000123-[0-9a-f]{8}$`), ObjectName("sin-extension", now))
	assert.NotEqual(t, ObjectName("a.png", now), ObjectName("a.png", now))
}

func TestLocalUpload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	l, err := NewLocal(dir, "http://localhost:4000/")
	require.NoError(t, err)

	url, err := l.Upload(context.Background(), "123-abcdef01.txt", "text/plain", strings.NewReader("hola"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4000/files/123-abcdef01.txt", url)

	content, err := os.ReadFile(filepath.Join(dir, "123-abcdef01.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hola", string(content))
}

func TestLocalUpload_StripsDirectories(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "")
	require.NoError(t, err)

	url, err := l.Upload(context.Background(), "../../escape.txt", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/files/escape.txt", url)
	_, err = os.Stat(filepath.Join(dir, "escape.txt"))
	assert.NoError(t, err)
}

func TestLocalUpload_CanceledContext(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = l.Upload(ctx, "a.txt", "text/plain", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
