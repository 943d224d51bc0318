package configwatcher

import (
	"context"
	"english_app_backend/internal/config"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = "storage:\n  type: minio\ngrading:\n  pass_threshold_mode: fixed\n"

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(baseConfig), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *config.Config, 1)
	done := make(chan error, 1)
	go func() {
		done <- WatchConfig(ctx, file, func(cfg *config.Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// give the watcher time to register the directory
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(file, []byte("storage:\n  type: minio\ngrading:\n  pass_threshold_mode: quiz\n"), 0644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, config.PassThresholdQuiz, cfg.Grading.PassThresholdMode)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestWatchConfigIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(baseConfig), 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	calls := 0
	go func() {
		time.Sleep(200 * time.Millisecond)
		os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644)
	}()
	require.NoError(t, WatchConfig(ctx, file, func(*config.Config) { calls++ }))
	assert.Zero(t, calls)
}
