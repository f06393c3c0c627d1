package cmd

import (
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ListScenes prints the built-in scenes and the scene files found in the
// scenes directory.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	scenes, err := scene.ListAllScenes(ctx.String("dir"))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Name", "Group", "Description"})
	for _, info := range scenes {
		table.Append([]string{info.ID, info.Name, info.Group, info.Description})
	}
	table.Render()

	return nil
}
