package commands

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tick/internal/core/logging"
	"github.com/colonyops/tick/internal/core/task"
	"github.com/colonyops/tick/internal/tick"
	"github.com/colonyops/tick/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *tick.App

	filter string
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *tick.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "tui",
		Usage:       "Open the interactive task list",
		UsageText:   "tick tui [--filter all|active|completed]",
		Description: "Runs the full-screen task list. This is also what 'tick' runs with no command.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "filter",
				Usage:       "initial filter (all, active, completed); defaults to tui.default_filter",
				Destination: &cmd.filter,
			},
		},
		Action: cmd.run,
	})
	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	ctx = logging.WithCommand(ctx, "tui")

	filter := cmd.app.Config.Filter()
	if cmd.filter != "" {
		f, err := task.ParseFilter(cmd.filter)
		if err != nil {
			return err
		}
		filter = f
	}

	m := tui.New(ctx, cmd.app.Tasks, tui.Options{
		Filter:       filter,
		ConfirmClear: cmd.app.Config.TUI.ConfirmClear,
	})

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
