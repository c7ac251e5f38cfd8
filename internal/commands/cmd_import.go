package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tick/internal/core/logging"
	"github.com/colonyops/tick/internal/tick"
	"github.com/colonyops/tick/pkg/iojson"
)

type ImportCmd struct {
	flags  *Flags
	app    *tick.App
	reader *iojson.FileReader
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *tick.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app, reader: iojson.NewFileReader()}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Merge tasks from a JSON array",
		UsageText: "tick import [-f todos.json] < todos.json",
		Description: `Reads a JSON array of {id, title, completed, createdAt} records, such as a
browser localStorage export, and appends its tasks after the current ones.
Records are decoded leniently: malformed entries are dropped or repaired, and
ids already in the list are skipped.`,
		Flags: []cli.Flag{
			cmd.reader.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "import")

	data, err := cmd.reader.Read()
	if err != nil {
		return err
	}

	n := cmd.app.Tasks.Import(ctx, data)
	_, err = fmt.Fprintf(c.Root().Writer, "imported %d tasks\n", n)
	return err
}
