package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/urfave/cli"

	"github.com/df07/go-whitted-raytracer/web/server"
)

// Serve runs the HTTP render server until interrupted.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	serveCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return server.NewServer(server.Config{
		Port:      ctx.Int("port"),
		ScenesDir: ctx.String("dir"),
		Workers:   ctx.Int("workers"),
	}).Start(serveCtx)
}
