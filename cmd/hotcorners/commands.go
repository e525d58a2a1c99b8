package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"

	"github.com/hotcorners/hotcorners/internal/config"
	"github.com/hotcorners/hotcorners/internal/daemon"
	"github.com/hotcorners/hotcorners/internal/database"
	"github.com/hotcorners/hotcorners/internal/reporter"
	"github.com/hotcorners/hotcorners/pkg/apps"
	"github.com/hotcorners/hotcorners/pkg/backend"
	"github.com/hotcorners/hotcorners/pkg/corner"
)

// bindingsFile is the YAML shape used by export and import.
type bindingsFile struct {
	Corners map[string]corner.Action `yaml:"corners"`
}

// openRepository loads the config and opens the binding/trigger store. The
// returned func closes the database.
func openRepository() (*database.Repository, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Initialize(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return database.NewRepository(db), func() { db.Close() }, nil
}

func stopCommand(ctx *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	dm := daemon.New(cfg.Daemon.PIDFile)
	if err := dm.Stop(); err != nil {
		if errors.Is(err, daemon.ErrNotRunning) {
			fmt.Println("Monitor is not running.")
			return nil
		}
		return err
	}
	fmt.Println("Monitor stopped.")
	return nil
}

func statusCommand(ctx *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, _ := dm.IsRunning()

	platform := "unavailable"
	permission := false
	if be, err := backend.New(); err == nil {
		if be.IsAvailable() {
			platform = be.PlatformName()
			permission = be.CheckPermission(false)
		}
		be.Close()
	}

	repo, closeRepo, err := openRepository()
	if err != nil {
		return err
	}
	defer closeRepo()
	bindings, err := repo.LoadBindings()
	if err != nil {
		return fmt.Errorf("failed to load corner bindings: %w", err)
	}

	if ctx.Bool("json") {
		out := map[string]interface{}{
			"running":       running,
			"pid":           pid,
			"platform":      platform,
			"permission":    permission,
			"poll_interval": cfg.Engine.PollInterval.String(),
			"tolerance":     cfg.Engine.Tolerance,
			"cooldown":      cfg.Engine.Cooldown.String(),
			"database":      cfg.Database.Path,
			"corners":       bindingsByName(bindings),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if running {
		fmt.Printf("Monitor:    running (PID %d)\n", pid)
	} else {
		fmt.Println("Monitor:    not running")
	}
	fmt.Printf("Platform:   %s\n", platform)
	fmt.Printf("Permission: %s\n", yesNo(permission))
	fmt.Printf("Polling:    every %s, tolerance %.0fpx, cooldown %s\n",
		cfg.Engine.PollInterval, cfg.Engine.Tolerance, cfg.Engine.Cooldown)
	fmt.Printf("Database:   %s\n", cfg.Database.Path)
	fmt.Println()
	printBindings(bindings)
	return nil
}

func cornersCommand(ctx *cli.Context) error {
	repo, closeRepo, err := openRepository()
	if err != nil {
		return err
	}
	defer closeRepo()
	bindings, err := repo.LoadBindings()
	if err != nil {
		return fmt.Errorf("failed to load corner bindings: %w", err)
	}
	printBindings(bindings)
	return nil
}

func bindCommand(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return errors.New("usage: hotcorners bind <corner> <application path or name>")
	}
	c, err := corner.Parse(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	action, err := resolveAction(ctx.Args().Get(1), ctx.String("name"))
	if err != nil {
		return err
	}

	repo, closeRepo, err := openRepository()
	if err != nil {
		return err
	}
	defer closeRepo()
	if err := repo.SaveBinding(c, action); err != nil {
		return fmt.Errorf("failed to save binding: %w", err)
	}
	fmt.Printf("%s -> %s (%s)\n", c, action.Name, action.Path)
	return notifyMonitor()
}

func unbindCommand(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return errors.New("usage: hotcorners unbind <corner>")
	}
	c, err := corner.Parse(ctx.Args().Get(0))
	if err != nil {
		return err
	}

	repo, closeRepo, err := openRepository()
	if err != nil {
		return err
	}
	defer closeRepo()
	if err := repo.SaveBinding(c, corner.Action{}); err != nil {
		return fmt.Errorf("failed to save binding: %w", err)
	}
	fmt.Printf("%s unbound\n", c)
	return notifyMonitor()
}

// resolveAction turns the bind argument into an action. An argument with a
// path separator is used as-is; anything else is looked up among the
// installed applications.
func resolveAction(arg, name string) (corner.Action, error) {
	if strings.ContainsAny(arg, `/\`) {
		action := corner.Action{Name: name, Path: arg}
		if action.Name == "" {
			action.Name = displayName(arg)
		}
		return action, nil
	}

	list, err := apps.List()
	if err != nil {
		return corner.Action{}, fmt.Errorf("failed to list applications: %w", err)
	}
	app, ok := apps.FindByName(list, arg)
	if !ok {
		return corner.Action{}, fmt.Errorf("no installed application named %q (try a full path)", arg)
	}
	action := corner.Action{Name: app.Name, Path: app.Path, Icon: app.Icon}
	if name != "" {
		action.Name = name
	}
	return action, nil
}

// displayName derives a label from a path: the file name without its
// extension.
func displayName(path string) string {
	base := path
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}

// notifyMonitor tells a running monitor to reload its bindings. A monitor
// that is not running picks them up at startup, so that is not an error.
func notifyMonitor() error {
	cfg, err := config.Load()
	if err != nil {
		return nil
	}
	dm := daemon.New(cfg.Daemon.PIDFile)
	if err := dm.Reload(); err != nil && !errors.Is(err, daemon.ErrNotRunning) {
		fmt.Printf("Note: could not notify the running monitor: %v\n", err)
	}
	return nil
}

func appsCommand(ctx *cli.Context) error {
	list, err := apps.List()
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}
	if len(list) == 0 {
		fmt.Println("No applications found.")
		return nil
	}
	for _, app := range list {
		fmt.Printf("%-30s %s\n", app.Name, app.Path)
	}
	return nil
}

func reportCommand(ctx *cli.Context) error {
	periodType := "day"
	if ctx.NArg() > 0 {
		periodType = ctx.Args().Get(0)
	}

	repo, closeRepo, err := openRepository()
	if err != nil {
		return err
	}
	defer closeRepo()

	rep := reporter.New(repo)
	report, err := rep.GenerateReport(periodType)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		out, err := rep.FormatReportJSON(report)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}
	fmt.Println(rep.FormatReportText(report))
	return nil
}

func historyCommand(ctx *cli.Context) error {
	repo, closeRepo, err := openRepository()
	if err != nil {
		return err
	}
	defer closeRepo()

	limit := ctx.Int("limit")
	if limit <= 0 {
		limit = 20
	}
	triggers, err := repo.GetRecentTriggers(limit)
	if err != nil {
		return fmt.Errorf("failed to load triggers: %w", err)
	}

	if ctx.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(triggers)
	}

	if len(triggers) == 0 {
		fmt.Println("No triggers recorded.")
		return nil
	}
	for _, t := range triggers {
		status := "ok"
		if !t.Launched {
			status = "failed"
		}
		fmt.Printf("%s  %-12s  %-20s %s\n",
			t.Timestamp.Format("2006-01-02 15:04:05"), t.Corner, t.AppName, status)
	}
	return nil
}

func exportCommand(ctx *cli.Context) error {
	repo, closeRepo, err := openRepository()
	if err != nil {
		return err
	}
	defer closeRepo()
	bindings, err := repo.LoadBindings()
	if err != nil {
		return fmt.Errorf("failed to load corner bindings: %w", err)
	}

	data, err := yaml.Marshal(bindingsFile{Corners: bindingsByName(bindings)})
	if err != nil {
		return fmt.Errorf("failed to encode bindings: %w", err)
	}

	if ctx.NArg() == 0 {
		fmt.Print(string(data))
		return nil
	}
	file := ctx.Args().Get(0)
	if err := os.WriteFile(file, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	fmt.Printf("Bindings written to %s\n", file)
	return nil
}

func importCommand(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return errors.New("usage: hotcorners import <file>")
	}
	file := ctx.Args().Get(0)
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}
	var in bindingsFile
	if err := yaml.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("failed to parse %s: %w", file, err)
	}

	bindings := corner.NewBindings()
	for name, action := range in.Corners {
		c, err := corner.Parse(name)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		bindings[c] = action
	}

	repo, closeRepo, err := openRepository()
	if err != nil {
		return err
	}
	defer closeRepo()
	if err := repo.SaveBindings(bindings); err != nil {
		return fmt.Errorf("failed to save bindings: %w", err)
	}
	fmt.Printf("Imported %d binding(s) from %s\n", bindings.Assigned(), file)
	return notifyMonitor()
}

func clearCommand(ctx *cli.Context) error {
	days := ctx.Int("days")

	if !ctx.Bool("yes") {
		prompt := "Delete all trigger history? This cannot be undone. (yes/no): "
		if days > 0 {
			prompt = fmt.Sprintf("Delete triggers older than %d day(s)? This cannot be undone. (yes/no): ", days)
		}
		fmt.Print(prompt)
		var answer string
		fmt.Scanln(&answer)
		if strings.ToLower(strings.TrimSpace(answer)) != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	repo, closeRepo, err := openRepository()
	if err != nil {
		return err
	}
	defer closeRepo()

	if days > 0 {
		deleted, err := repo.DeleteOldTriggers(time.Now().AddDate(0, 0, -days))
		if err != nil {
			return fmt.Errorf("failed to trim history: %w", err)
		}
		fmt.Printf("Deleted %d trigger(s).\n", deleted)
		return nil
	}

	if err := repo.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	fmt.Println("Trigger history cleared.")
	return nil
}

// bindingsByName keys the bindings by corner name for JSON and YAML output.
func bindingsByName(b corner.Bindings) map[string]corner.Action {
	out := make(map[string]corner.Action, len(b))
	for _, c := range corner.Corners() {
		out[c.String()] = b[c]
	}
	return out
}

func printBindings(b corner.Bindings) {
	fmt.Println("Corners:")
	for _, c := range corner.Corners() {
		action := b[c]
		if !action.IsAssigned() {
			fmt.Printf("  %-14s (unassigned)\n", c)
			continue
		}
		fmt.Printf("  %-14s %s (%s)\n", c, action.Name, action.Path)
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
