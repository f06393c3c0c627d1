package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// RenderFrame renders a single frame and writes it to disk. With --watch
// the frame is rendered again whenever the scene file changes.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sceneName := ctx.String("scene")
	if sceneName == "" && ctx.NArg() > 0 {
		sceneName = ctx.Args().First()
	}
	if sceneName == "" {
		sceneName = "default"
	}

	outPath := ctx.String("out")
	format := output.Format(strings.ToLower(ctx.String("format")))
	if outPath == "" {
		dir, err := createOutputDir(sceneName)
		if err != nil {
			return err
		}
		outPath = defaultOutputPath(dir, format, time.Now())
	} else {
		var err error
		if format, err = output.FormatFromPath(outPath); err != nil {
			return err
		}
	}

	// Stop between tiles on Ctrl+C
	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	render := func() error {
		sc, err := scene.Load(sceneName)
		if err != nil {
			return err
		}

		opts := renderer.Options{
			Width:      ctx.Int("width"),
			Height:     ctx.Int("height"),
			MaxDepth:   ctx.Int("max-depth"),
			NumWorkers: ctx.Int("workers"),
			TileSize:   ctx.Int("tile-size"),
			OnTileDone: progressLogger(),
		}
		if opts.Width == 0 && opts.Height == 0 {
			opts.Width, opts.Height = sc.GetImageSize()
		}

		camera := sc.GetCameraConfig()
		logger.Noticef("rendering scene %q at %dx%d", sceneName, opts.Width, opts.Height)
		logger.Infof("camera at %v looking at %v with %g degree field of view", camera.Center, camera.LookAt, camera.VFov)
		img, stats, err := renderer.Render(renderCtx, sc, opts)
		if err != nil {
			return err
		}
		if ctx.Bool("normalize") {
			img.Normalize()
		}

		displayRenderStats(stats)

		start := time.Now()
		if err := output.SaveAs(outPath, img, format); err != nil {
			return err
		}
		logger.Noticef("wrote frame to %s in %d ms", outPath, time.Since(start).Milliseconds())
		return nil
	}

	if err := render(); err != nil {
		return err
	}
	if !ctx.Bool("watch") {
		return nil
	}

	if info, err := os.Stat(sceneName); err != nil || info.IsDir() {
		return fmt.Errorf("--watch needs a scene file, got %q", sceneName)
	}
	logger.Noticef("watching %s for changes, press Ctrl+C to stop", sceneName)
	return watchScene(renderCtx, sceneName, watchDebounce, render)
}

// progressLogger reports every tenth of the frame at info level
func progressLogger() func(renderer.TileCompletion) {
	lastDecile := 0
	return func(c renderer.TileCompletion) {
		decile := c.TileNumber * 10 / c.TotalTiles
		if decile > lastDecile {
			lastDecile = decile
			logger.Infof("%3d%% (%d/%d tiles)", decile*10, c.TileNumber, c.TotalTiles)
		}
	}
}

// createOutputDir creates output/<scene> and returns its path. Scene file
// paths use the file name without extension.
func createOutputDir(sceneName string) (string, error) {
	base := filepath.Base(sceneName)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	dir := filepath.Join("output", base)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}
	return dir, nil
}

func defaultOutputPath(dir string, format output.Format, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("render_%s.%s", now.Format("20060102_150405"), format))
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frame", "Tiles", "Workers", "Primary rays", "Shadow rays", "Secondary rays", "Max depth", "Failed pixels"})
	table.Append([]string{
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d", stats.Tiles),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%d", stats.Rays.PrimaryRays),
		fmt.Sprintf("%d", stats.Rays.ShadowRays),
		fmt.Sprintf("%d", stats.Rays.SecondaryRays),
		fmt.Sprintf("%d", stats.Rays.MaxDepthReached),
		fmt.Sprintf("%d", stats.FailedPixels),
	})
	table.SetFooter([]string{"", "", "", "", "", "", "TOTAL", fmt.Sprintf("%s (%.0f rays/s)", stats.Duration, stats.RaysPerSecond())})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
