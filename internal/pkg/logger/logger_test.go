package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONFile(t *testing.T) {
	dir := t.TempDir()

	log, err := New(dir, "test", false)
	require.NoError(t, err)

	log.Infow("store loaded", "path", "data/database.json")
	_ = log.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "test.log"))
	require.NoError(t, err)

	out := string(data)
	require.True(t, strings.Contains(out, `"msg":"store loaded"`), out)
	require.True(t, strings.Contains(out, `"path":"data/database.json"`), out)
	require.True(t, strings.Contains(out, `"level":"info"`), out)
}

func TestNew_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	_, err := New(dir, "api", false)
	require.NoError(t, err)

	_, err = os.Stat(dir)
	require.NoError(t, err)
}
