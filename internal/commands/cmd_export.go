package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tick/internal/core/logging"
	"github.com/colonyops/tick/internal/tick"
	"github.com/colonyops/tick/pkg/iojson"
)

type ExportCmd struct {
	flags *Flags
	app   *tick.App
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *tick.App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Print the stored task list as JSON",
		UsageText: "tick export > todos.json",
		Description: `Writes the stored payload exactly as persisted (pretty-printed when it is
valid JSON). Prints [] when nothing has been stored yet.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	raw, ok := cmd.app.Store.Raw(logging.WithCommand(ctx, "export"))
	if !ok {
		_, err := fmt.Fprintln(c.Root().Writer, "[]")
		return err
	}
	return iojson.WriteRaw(c.Root().Writer, raw)
}
