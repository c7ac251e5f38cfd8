package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tick/internal/core/logging"
	"github.com/colonyops/tick/internal/output"
	"github.com/colonyops/tick/internal/tick"
)

type ToggleCmd struct {
	flags *Flags
	app   *tick.App
}

// NewToggleCmd creates a new toggle command
func NewToggleCmd(flags *Flags, app *tick.App) *ToggleCmd {
	return &ToggleCmd{flags: flags, app: app}
}

// Register adds the toggle command to the application
func (cmd *ToggleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "toggle",
		Aliases:   []string{"done"},
		Usage:     "Flip a task between active and completed",
		UsageText: "tick toggle <id|prefix|#position>",
		Description: `Toggles the completion state of one task. The reference may be a full id,
a unique id prefix, or a 1-based position as shown by 'tick ls'.
An unknown reference does nothing.

Examples:
  tick toggle #1
  tick done 3f2a`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ToggleCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "toggle")

	tasks := cmd.app.Tasks.Tasks()
	t, ok := ResolveRef(tasks, c.Args().First())
	if !ok {
		log.Debug().Ctx(ctx).Str("ref", c.Args().First()).Msg("no task matches reference")
		return nil
	}

	ctx = logging.WithTaskID(ctx, t.ID)
	cmd.app.Tasks.Toggle(ctx, t.ID)

	updated := cmd.app.Tasks.Tasks()
	pos := updated.Index(t.ID)
	_, err := fmt.Fprintln(c.Root().Writer, output.Row(pos+1, updated[pos]))
	return err
}
