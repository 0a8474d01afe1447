package app

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mkarlsen/timesheet/config"
	"github.com/mkarlsen/timesheet/report"
	"github.com/mkarlsen/timesheet/store"
	"github.com/mkarlsen/timesheet/tracker"
)

// newLogger opens the append-only event log. It is write-only: nothing in
// the application ever reads it back.
func newLogger() *slog.Logger {
	w := &lumberjack.Logger{
		Filename:   config.LogFilePath(),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.New(
		config.WithViperConfig(config.ConfigFilePath()),
	)
	if err != nil {
		return nil, err
	}

	if ctx.Duration("interval") > 0 {
		cfg.ReminderInterval = ctx.Duration("interval")
	}

	return cfg, nil
}

func newStore(cfg *config.Config, logger *slog.Logger) *store.Store {
	return store.New(store.Options{
		Logger:          logger,
		SessionPath:     config.SessionFilePath(),
		ProjectsPath:    config.ProjectFilePath(),
		StatusPath:      config.StatusFilePath(),
		DefaultProjects: cfg.DefaultProjects,
	})
}

// trackerHelper wires up the config, store, and tracker shared by most
// actions.
func trackerHelper(ctx *cli.Context) (*tracker.Tracker, *store.Store, *config.Config, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	st := newStore(cfg, newLogger())

	t, err := tracker.New(st, newLogger())
	if err != nil {
		return nil, nil, nil, err
	}

	return t, st, cfg, nil
}

// trackAction opens the interactive tracking screen.
func trackAction(ctx *cli.Context) error {
	t, st, cfg, err := trackerHelper(ctx)
	if err != nil {
		return err
	}

	projects, err := st.LoadProjects()
	if err != nil {
		return err
	}

	m := tracker.NewModel(
		t,
		projects,
		cfg.ReminderInterval,
		cfg.TwentyFourHour,
	)

	_, err = tea.NewProgram(m).Run()

	return err
}

// summaryAction prints logged hours per project per day over the entire
// history.
func summaryAction(ctx *cli.Context) error {
	_, st, _, err := trackerHelper(ctx)
	if err != nil {
		return err
	}

	sessions, err := st.Load(nil)
	if err != nil {
		return err
	}

	s := report.Build(sessions, time.Now())

	if ctx.Bool("json") {
		b, err := s.ToJSON()
		if err != nil {
			return err
		}

		fmt.Println(string(b))

		return nil
	}

	if s.Empty() {
		pterm.Info.Println(noSessionsMsg)
		return nil
	}

	printSummaryTable(os.Stdout, s)

	return nil
}

// listAction prints today's sessions.
func listAction(ctx *cli.Context) error {
	t, _, _, err := trackerHelper(ctx)
	if err != nil {
		return err
	}

	sessions := t.Sessions()

	if ctx.Bool("json") {
		return printSessionsJSON(os.Stdout, sessions)
	}

	if len(sessions) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return nil
	}

	printSessionsTable(os.Stdout, sessions)

	return nil
}

// adjustAction moves logged time between two projects for today.
func adjustAction(ctx *cli.Context) error {
	t, _, _, err := trackerHelper(ctx)
	if err != nil {
		return err
	}

	from := ctx.String("from")
	to := ctx.String("to")
	hours := ctx.Float64("hours")

	if err := t.Adjust(from, to, hours); err != nil {
		return err
	}

	pterm.Success.Printfln("Moved %.2f hrs from %s to %s", hours, from, to)

	return nil
}

// pruneAction deletes all entries from before today after confirmation.
func pruneAction(ctx *cli.Context) error {
	t, _, _, err := trackerHelper(ctx)
	if err != nil {
		return err
	}

	if !ctx.Bool("force") {
		var confirmed bool

		err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Delete all past entries?").
					Description("Every session logged before today will be removed permanently.").
					Value(&confirmed),
			),
		).Run()
		if err != nil {
			return err
		}

		if !confirmed {
			pterm.Info.Println("Nothing deleted")
			return nil
		}
	}

	removed, err := t.Prune()
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Deleted %d past entries", removed)

	return nil
}

// projectsAction lists the configured projects.
func projectsAction(ctx *cli.Context) error {
	_, st, _, err := trackerHelper(ctx)
	if err != nil {
		return err
	}

	projects, err := st.LoadProjects()
	if err != nil {
		return err
	}

	for _, p := range projects {
		pterm.Println(p)
	}

	return nil
}

// projectsAddAction appends a project to the list.
func projectsAddAction(ctx *cli.Context) error {
	name := strings.TrimSpace(strings.Join(ctx.Args().Slice(), " "))
	if name == "" {
		return fmt.Errorf("usage: timesheet projects add NAME")
	}

	_, st, _, err := trackerHelper(ctx)
	if err != nil {
		return err
	}

	projects, err := st.LoadProjects()
	if err != nil {
		return err
	}

	if slices.Contains(projects, name) {
		pterm.Warning.Printfln("%s is already on the project list", name)
		return nil
	}

	if err := st.SaveProjects(append(projects, name)); err != nil {
		return err
	}

	pterm.Success.Printfln("Added %s", name)

	return nil
}

// projectsRemoveAction deletes a project from the list, prompting for a
// selection when no name is given.
func projectsRemoveAction(ctx *cli.Context) error {
	_, st, _, err := trackerHelper(ctx)
	if err != nil {
		return err
	}

	projects, err := st.LoadProjects()
	if err != nil {
		return err
	}

	name := strings.TrimSpace(strings.Join(ctx.Args().Slice(), " "))
	if name == "" {
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Remove which project?").
					Options(huh.NewOptions(projects...)...).
					Value(&name),
			),
		).Run()
		if err != nil {
			return err
		}
	}

	i := slices.Index(projects, name)
	if i < 0 {
		pterm.Warning.Printfln("%s is not on the project list", name)
		return nil
	}

	remaining := slices.Delete(projects, i, i+1)
	if len(remaining) == 0 {
		return fmt.Errorf("cannot remove %s: the project list must not be empty", name)
	}

	if err := st.SaveProjects(remaining); err != nil {
		return err
	}

	pterm.Success.Printfln("Removed %s", name)

	return nil
}
