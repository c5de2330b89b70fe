package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "classbell.log")

	log, closer, err := New(Config{Path: path, Level: zerolog.InfoLevel})
	require.NoError(t, err)

	log.Debug().Msg("hidden below level")
	child := log.With().Str("component", "ticker").Logger()
	child.Info().Msg("session started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"component":"ticker"`)
	assert.Contains(t, out, `"message":"session started"`)
	assert.Contains(t, out, `"app":"classbell"`)
	assert.NotContains(t, out, "hidden below level")
	assert.NotContains(t, out, "logger initialized")
}

func TestNew_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classbell.log")

	for _, msg := range []string{"first", "second"} {
		log, closer, err := New(Config{Path: path, Level: zerolog.DebugLevel})
		require.NoError(t, err)
		log.Info().Msg(msg)
		require.NoError(t, closer.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
}

func TestNew_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, closer, err := New(Config{Path: filepath.Join(blocker, "classbell.log")})
	require.Error(t, err)
	assert.Nil(t, closer)
}
