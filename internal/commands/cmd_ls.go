package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tick/internal/core/task"
	"github.com/colonyops/tick/internal/output"
	"github.com/colonyops/tick/internal/tick"
	"github.com/colonyops/tick/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *tick.App

	// flags
	filter     string
	match      string
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *tick.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "List tasks",
		UsageText: "tick ls [--filter all|active|completed] [--match <glob>] [--json]",
		Description: `Prints tasks newest first with their position, checkbox and title, followed
by the number of tasks remaining. Positions always refer to the full list so
they can be passed to toggle and rm even when a filter is active.

--match takes a case-insensitive glob. A bare word matches anywhere in the title.

Examples:
  tick ls
  tick ls --filter active
  tick ls --match "*milk*" --json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "filter",
				Usage:       "which tasks to show (all, active, completed); defaults to tui.default_filter",
				Destination: &cmd.filter,
			},
			&cli.StringFlag{
				Name:        "match",
				Aliases:     []string{"m"},
				Usage:       "only show titles matching a glob",
				Destination: &cmd.match,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the matching tasks as a JSON array",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(_ context.Context, c *cli.Command) error {
	filter := cmd.app.Config.Filter()
	if cmd.filter != "" {
		f, err := task.ParseFilter(cmd.filter)
		if err != nil {
			return err
		}
		filter = f
	}

	v, err := cmd.app.Tasks.View(filter, cmd.match)
	if err != nil {
		return fmt.Errorf("match: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		rows := v.Rows
		if rows == nil {
			rows = task.List{}
		}
		return iojson.WriteWith(out, os.Stderr, rows)
	}

	return output.WriteView(out, cmd.app.Tasks.Tasks(), v)
}
