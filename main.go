package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-whitted-raytracer/cmd"
	"github.com/df07/go-whitted-raytracer/pkg/log"
)

var logger = log.New("raytracer")

func main() {
	os.Exit(run(os.Args))
}

// run executes the command line and logs the error of a failed command
func run(args []string) int {
	if err := newApp().Run(args); err != nil {
		logger.Error(err)
		return 1
	}
	return 0
}

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-whitted-raytracer"
	app.Usage = "render scenes using Whitted-style ray tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a built-in scene or a YAML/TOML scene file and write the frame as
PNG, PPM, BMP or TIFF.

When no output file is given the frame is written to
output/<scene>/render_<timestamp>.<format>.`,
			ArgsUsage: "[scene]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "scene, s",
					Usage:  "built-in scene name or path to a .yaml or .toml scene file",
					EnvVar: "RAYTRACER_SCENE",
				},
				cli.IntFlag{
					Name:   "width",
					Usage:  "frame width (0 with height 0 uses the scene's size)",
					EnvVar: "RAYTRACER_WIDTH",
				},
				cli.IntFlag{
					Name:   "height",
					Usage:  "frame height",
					EnvVar: "RAYTRACER_HEIGHT",
				},
				cli.IntFlag{
					Name:   "max-depth",
					Value:  5,
					Usage:  "maximum number of nested reflected/refracted rays",
					EnvVar: "RAYTRACER_MAX_DEPTH",
				},
				cli.IntFlag{
					Name:   "workers",
					Usage:  "number of render workers (0 uses every CPU)",
					EnvVar: "RAYTRACER_WORKERS",
				},
				cli.IntFlag{
					Name:   "tile-size",
					Value:  32,
					Usage:  "tile edge length in pixels",
					EnvVar: "RAYTRACER_TILE_SIZE",
				},
				cli.StringFlag{
					Name:   "out, o",
					Usage:  "image filename; the extension selects the format",
					EnvVar: "RAYTRACER_OUT",
				},
				cli.StringFlag{
					Name:   "format",
					Value:  "png",
					Usage:  "image format for the default output path (png, ppm, bmp or tiff)",
					EnvVar: "RAYTRACER_FORMAT",
				},
				cli.BoolFlag{
					Name:  "normalize",
					Usage: "stretch the frame so its darkest channel is 0 and its brightest is 1",
				},
				cli.BoolFlag{
					Name:  "watch, w",
					Usage: "render again whenever the scene file changes",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:  "scenes",
			Usage: "list built-in scenes and scene files",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "dir",
					Value:  "scenes",
					Usage:  "directory to scan for scene files",
					EnvVar: "RAYTRACER_SCENES_DIR",
				},
			},
			Action: cmd.ListScenes,
		},
		{
			Name:  "serve",
			Usage: "serve renders and scene inspection over HTTP",
			Description: `
Start a web server with the endpoints:

  /api/health   liveness check
  /api/scenes   built-in scenes and scene files as JSON
  /api/render   server-sent tile progress followed by the PNG frame
  /api/image    the PNG frame
  /api/inspect  the surface hit through pixel x, y`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:   "port",
					Value:  8080,
					Usage:  "port to listen on",
					EnvVar: "RAYTRACER_PORT",
				},
				cli.StringFlag{
					Name:   "dir",
					Value:  "scenes",
					Usage:  "directory of scene files that may be rendered",
					EnvVar: "RAYTRACER_SCENES_DIR",
				},
				cli.IntFlag{
					Name:   "workers",
					Usage:  "render workers per request (0 uses every CPU)",
					EnvVar: "RAYTRACER_WORKERS",
				},
			},
			Action: cmd.Serve,
		},
	}

	return app
}
