package commands

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tick/internal/core/logging"
	"github.com/colonyops/tick/internal/tick"
)

type RmCmd struct {
	flags *Flags
	app   *tick.App
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *tick.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Aliases:   []string{"delete"},
		Usage:     "Delete a task",
		UsageText: "tick rm <id|prefix|#position>",
		Description: `Removes one task regardless of its state. An unknown reference does nothing.

Examples:
  tick rm #2
  tick delete 3f2a`,
		Action: cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "rm")

	t, ok := ResolveRef(cmd.app.Tasks.Tasks(), c.Args().First())
	if !ok {
		log.Debug().Ctx(ctx).Str("ref", c.Args().First()).Msg("no task matches reference")
		return nil
	}

	cmd.app.Tasks.Delete(logging.WithTaskID(ctx, t.ID), t.ID)
	return nil
}
