package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/tick/internal/core/doctor"
	"github.com/colonyops/tick/internal/core/styles"
	"github.com/colonyops/tick/internal/tick"
	"github.com/colonyops/tick/pkg/iojson"
)

type DoctorCmd struct {
	flags  *Flags
	app    *tick.App
	format string
}

func NewDoctorCmd(flags *Flags, app *tick.App) *DoctorCmd {
	return &DoctorCmd{flags: flags, app: app}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on config and storage",
		UsageText:   "tick doctor [options]",
		Description: "Checks the configuration file, the storage backend, and whether the stored task list decodes cleanly. Read-only.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	results := cmd.app.Doctor.RunChecks(ctx, cmd.flags.ConfigPath)

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}

	return cmd.outputText(c.Root().ErrWriter, results)
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	return iojson.WriteWith(c.Root().Writer, os.Stderr, out)
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (cmd *DoctorCmd) outputText(w io.Writer, results []doctor.Result) error {
	divider := styles.DividerStyle.Render(strings.Repeat("─", 40))

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.TextPrimaryBoldStyle.Render("Tick Doctor"))
	_, _ = fmt.Fprintln(w, divider)
	_, _ = fmt.Fprintln(w)

	for _, result := range results {
		_, _ = fmt.Fprintln(w, styles.TextForegroundBoldStyle.Render(result.Name))

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + styles.TextMutedStyle.Render(item.Detail)
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = styles.TextSuccessStyle.Render(styles.IconPass)
			case doctor.StatusWarn:
				icon = styles.TextWarningStyle.Render(styles.IconWarn)
			case doctor.StatusFail:
				icon = styles.TextErrorStyle.Render(styles.IconFail)
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", icon, item.Label, detail)
		}

		_, _ = fmt.Fprintln(w)
	}

	passed, warned, failed := doctor.Summary(results)
	summary := fmt.Sprintf("%s  %s  %s",
		styles.TextSuccessStyle.Render(fmt.Sprintf("%d passed", passed)),
		styles.TextWarningStyle.Render(fmt.Sprintf("%d warnings", warned)),
		styles.TextErrorStyle.Render(fmt.Sprintf("%d failed", failed)),
	)
	_, _ = fmt.Fprintln(w, summary)

	if failed > 0 {
		return cli.Exit("", 1)
	}

	return nil
}
