package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/tripweaver/internal/config"
)

func TestNew_MissingIndexIsNotFatal(t *testing.T) {
	cfg := config.Default()
	cfg.Index.Path = filepath.Join(t.TempDir(), "missing.json")
	logger := zerolog.Nop()

	s, err := New(cfg, &logger)
	require.NoError(t, err)

	assert.Equal(t, 0, s.Index.Len())
	assert.True(t, s.Index.Degraded())
}

func TestNew_LoadsIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"destinations":[{"id":"oslo"}]}`), 0o600))

	cfg := config.Default()
	cfg.Index.Path = path
	logger := zerolog.Nop()

	s, err := New(cfg, &logger)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Index.Len())
}

func TestNew_RequiresDependencies(t *testing.T) {
	logger := zerolog.Nop()

	_, err := New(nil, &logger)
	assert.Error(t, err)

	_, err = New(config.Default(), nil)
	assert.Error(t, err)
}

func TestStart_RequiresSetup(t *testing.T) {
	logger := zerolog.Nop()
	s, err := New(config.Default(), &logger)
	require.NoError(t, err)

	assert.Error(t, s.Start())
	assert.NoError(t, s.Shutdown(context.Background()))
}
