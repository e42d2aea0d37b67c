package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte("fps = 30\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := Watch(ctx, path, Flags{Ambient: -1})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("fps = 12\n"), 0o644))

	select {
	case cfg := <-w.Updates():
		assert.Equal(t, 12, cfg.FPS)
		assert.Len(t, cfg.Objects, 7)
	case err := <-w.Errors():
		t.Fatalf("unexpected watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatchReportsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte("fps = 30\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := Watch(ctx, path, Flags{Ambient: -1})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("fps = 1000\n"), 0o644))

	select {
	case cfg := <-w.Updates():
		t.Fatalf("invalid config delivered: %+v", cfg)
	case err := <-w.Errors():
		assert.Contains(t, err.Error(), "fps")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: 30\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	w, err := Watch(ctx, path, Flags{Ambient: -1})
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-w.Updates():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("updates channel not closed")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	_, err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "scene.toml"), Flags{})
	assert.Error(t, err)
}
