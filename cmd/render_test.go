package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

func TestCreateOutputDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	tests := []struct {
		name      string
		sceneName string
		expected  string
	}{
		{"built-in scene", "default", filepath.Join("output", "default")},
		{"yaml file path", "scenes/two-spheres.yaml", filepath.Join("output", "two-spheres")},
		{"nested yaml path", "scenes/subdir/my-scene.yml", filepath.Join("output", "my-scene")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, err := createOutputDir(tt.sceneName)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, dir)

			info, err := os.Stat(dir)
			require.NoError(t, err)
			assert.True(t, info.IsDir())
		})
	}
}

func TestDefaultOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	path := defaultOutputPath(filepath.Join("output", "glass"), output.FormatPPM, now)

	assert.Equal(t, filepath.Join("output", "glass", "render_20240309_140507.ppm"), path)
}

func TestDisplayRenderStats(t *testing.T) {
	assert.NotPanics(t, func() {
		displayRenderStats(renderer.RenderStats{Width: 4, Height: 4, Tiles: 1, Workers: 1, Duration: time.Millisecond})
	})
}

func TestProgressLogger(t *testing.T) {
	report := progressLogger()
	assert.NotPanics(t, func() {
		for i := 1; i <= 7; i++ {
			report(renderer.TileCompletion{TileNumber: i, TotalTiles: 7})
		}
	})
}

func TestWatchScene(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shapes: []\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	renders := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- watchScene(ctx, path, 10*time.Millisecond, func() error {
			renders <- struct{}{}
			return nil
		})
	}()

	// Give the watcher time to register before touching files
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("shapes: []\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("background: [1, 0, 0]\n"), 0o644))

	select {
	case <-renders:
	case <-time.After(5 * time.Second):
		t.Fatal("no render after the scene file changed")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
