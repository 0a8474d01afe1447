// Package app assembles the timesheet command-line interface.
package app

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/mkarlsen/timesheet/config"
)

const envNoColor = "NO_COLOR"

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
}

func beforeAction(ctx *cli.Context) error {
	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	config.InitializePaths()

	return nil
}

// Get retrieves the timesheet app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "timesheet",
		Usage: `Timesheet logs your working hours per project. Running it
		without a command opens the tracking screen, which reminds you at a
		fixed interval to record what you are working on.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Before:               beforeAction,
		Action:               trackAction,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Override the reminder interval (e.g. 30m, 1h)",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable coloured output",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "summary",
				Usage:  "Show logged hours per project per day",
				Action: summaryAction,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the summary as JSON",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List today's logged sessions",
				Action: listAction,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the sessions as JSON",
					},
				},
			},
			{
				Name:  "adjust",
				Usage: "Move logged time from one project to another for today",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "from",
						Usage:    "Project to move time away from",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "to",
						Usage:    "Project to move time to",
						Required: true,
					},
					&cli.Float64Flag{
						Name:     "hours",
						Usage:    "Hours to move",
						Required: true,
					},
				},
				Action: adjustAction,
			},
			{
				Name:   "prune",
				Usage:  "Delete all entries from before today",
				Action: pruneAction,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Skip the confirmation prompt",
					},
				},
			},
			{
				Name:   "projects",
				Usage:  "Manage the project list",
				Action: projectsAction,
				Subcommands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Add a project to the list",
						ArgsUsage: "NAME",
						Action:    projectsAddAction,
					},
					{
						Name:      "remove",
						Usage:     "Remove a project from the list",
						ArgsUsage: "[NAME]",
						Action:    projectsRemoveAction,
					},
				},
			},
		},
	}
}
