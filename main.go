package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/tick/internal/commands"
	"github.com/colonyops/tick/internal/core/config"
	"github.com/colonyops/tick/internal/core/logging"
	"github.com/colonyops/tick/internal/core/styles"
	"github.com/colonyops/tick/internal/tick"
	"github.com/colonyops/tick/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() reads
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		tickApp   = &tick.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "tick",
		Usage:     "A small, local to-do list",
		UsageText: "tick [global options] command [command options]",
		Description: `Tick keeps a single list of tasks on this machine.

Run 'tick' with no arguments to open the interactive list.
Run 'tick add <title>' to add a task from the shell.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TICK_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/tick.log)",
				Sources:     cli.EnvVars("TICK_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TICK_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TICK_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.BoolFlag{
				Name:        "memory",
				Usage:       "keep tasks in memory only; nothing is read from or written to disk",
				Sources:     cli.EnvVars("TICK_MEMORY"),
				Destination: &flags.Memory,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Always log to a file; use explicit path or default to <datadir>/tick.log.
			// Memory mode leaves the disk alone unless a log file is given.
			logFile := flags.LogFile
			if logFile == "" && !flags.Memory {
				logFile = cfg.LogFile()
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile, logging.ContextHook{})
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.Theme)
			styles.SetTheme(palette)

			storage := tick.OpenStorage(cfg, flags.Memory, log.With().Str("component", "storage").Logger())

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*tickApp = *tick.NewApp(cfg, storage, log.Logger)
			tickApp.Load(ctx)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if err := tickApp.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close database")
				return err
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, tickApp)

	app = commands.NewAddCmd(flags, tickApp).Register(app)
	app = commands.NewLsCmd(flags, tickApp).Register(app)
	app = commands.NewToggleCmd(flags, tickApp).Register(app)
	app = commands.NewRmCmd(flags, tickApp).Register(app)
	app = commands.NewClearCmd(flags, tickApp).Register(app)
	app = commands.NewExportCmd(flags, tickApp).Register(app)
	app = commands.NewImportCmd(flags, tickApp).Register(app)
	app = commands.NewDoctorCmd(flags, tickApp).Register(app)
	app = tuiCmd.Register(app)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'tick --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
