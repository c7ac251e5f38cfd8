package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/tick/internal/core/logging"
	"github.com/colonyops/tick/internal/core/task"
	"github.com/colonyops/tick/internal/tick"
)

type ClearCmd struct {
	flags *Flags
	app   *tick.App

	// flags
	yes bool

	isTerminal func() bool
	confirm    func(n int) (bool, error)
}

// NewClearCmd creates a new clear command
func NewClearCmd(flags *Flags, app *tick.App) *ClearCmd {
	return &ClearCmd{
		flags:      flags,
		app:        app,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		confirm:    confirmClear,
	}
}

// Register adds the clear command to the application
func (cmd *ClearCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "clear",
		Usage:     "Remove all completed tasks",
		UsageText: "tick clear [--yes]",
		Description: `Removes every completed task. Does nothing when no task is completed.

When tui.confirm_clear is enabled and stdin is a terminal, asks first.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "skip the confirmation prompt",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ClearCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "clear")

	done := task.CompletedCount(cmd.app.Tasks.Tasks())
	if done == 0 {
		log.Debug().Ctx(ctx).Msg("nothing to clear")
		return nil
	}

	if cmd.app.Config.TUI.ConfirmClear && !cmd.yes && cmd.isTerminal() {
		ok, err := cmd.confirm(done)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("confirm: %w", err)
		}
		if !ok {
			return nil
		}
	}

	n := cmd.app.Tasks.ClearCompleted(ctx)
	_, err := fmt.Fprintf(c.Root().Writer, "cleared %d completed\n", n)
	return err
}

func confirmClear(n int) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Remove %d completed task(s)?", n)).
				Affirmative("Clear").
				Negative("Cancel").
				Value(&ok),
		),
	).Run()
	return ok, err
}
