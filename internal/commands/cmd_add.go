package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tick/internal/core/logging"
	"github.com/colonyops/tick/internal/output"
	"github.com/colonyops/tick/internal/tick"
)

type AddCmd struct {
	flags *Flags
	app   *tick.App
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *tick.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a task to the top of the list",
		UsageText: "tick add <title...>",
		Description: `Adds a new, incomplete task. All arguments are joined into the title.
A blank title is ignored.

Examples:
  tick add Buy milk
  tick add "Review PR #42"`,
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "add")

	added, ok := cmd.app.Tasks.Add(ctx, strings.Join(c.Args().Slice(), " "))
	if !ok {
		log.Debug().Ctx(ctx).Msg("blank title ignored")
		return nil
	}

	_, err := fmt.Fprintln(c.Root().Writer, output.Row(1, added))
	return err
}
