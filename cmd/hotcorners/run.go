package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/hotcorners/hotcorners/internal/config"
	"github.com/hotcorners/hotcorners/internal/daemon"
	"github.com/hotcorners/hotcorners/internal/database"
	"github.com/hotcorners/hotcorners/internal/engine"
	"github.com/hotcorners/hotcorners/internal/logging"
	"github.com/hotcorners/hotcorners/internal/web"
	"github.com/hotcorners/hotcorners/pkg/backend"
)

const (
	// permissionRecheckInterval is how often a monitor that is waiting for
	// cursor access re-probes the permission gate.
	permissionRecheckInterval = time.Second

	wakeProbeInterval = time.Second
	wakeSlack         = 5 * time.Second

	shutdownTimeout = 10 * time.Second
)

func startCommand(ctx *cli.Context) error {
	return launchMonitor(ctx, false)
}

func serveCommand(ctx *cli.Context) error {
	return launchMonitor(ctx, true)
}

// launchMonitor starts the monitor process, either in the foreground or as
// a detached daemon. The daemon is created by re-executing the current
// binary with a marker variable in its environment; the child sees the
// marker and runs the monitor directly.
func launchMonitor(ctx *cli.Context, withWeb bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if port := ctx.Int("port"); port > 0 {
		cfg.Web.Port = port
	}

	dm := daemon.New(cfg.Daemon.PIDFile)
	if running, pid, _ := dm.IsRunning(); running {
		return fmt.Errorf("monitor is already running (PID %d)", pid)
	}

	if ctx.Bool("foreground") || os.Getenv(daemonChildEnv) == "1" {
		return runMonitor(cfg, dm, withWeb)
	}
	return daemonize(cfg, withWeb)
}

// daemonize re-executes the binary as a detached child and returns in the
// parent once the child has been handed to the OS. The original arguments
// are passed through so flags like --port reach the child; the environment
// marker is what makes the child run the monitor.
func daemonize(cfg *config.Config, withWeb bool) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	args := append([]string{exe}, os.Args[1:]...)
	attr := &os.ProcAttr{
		Env:   append(os.Environ(), daemonChildEnv+"=1"),
		Files: []*os.File{nil, nil, nil},
		Sys:   sysProcAttr(),
	}
	proc, err := os.StartProcess(exe, args, attr)
	if err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}
	if err := proc.Release(); err != nil {
		return fmt.Errorf("failed to release daemon process: %w", err)
	}

	fmt.Printf("Monitor started (PID %d)\n", proc.Pid)
	if withWeb && cfg.Web.Enabled {
		fmt.Printf("Dashboard: http://%s:%d\n", cfg.Web.Host, cfg.Web.Port)
	}
	fmt.Printf("Log file:  %s\n", daemonLogFile(cfg))
	return nil
}

// daemonLogFile is where a detached monitor writes its log when the config
// does not name one. A daemon has no terminal to write to.
func daemonLogFile(cfg *config.Config) string {
	if cfg.Log.File != "" {
		return cfg.Log.File
	}
	return filepath.Join(os.TempDir(), "hotcorners.log")
}

// runMonitor is the monitor process itself. It blocks until the process
// receives SIGINT or SIGTERM.
func runMonitor(cfg *config.Config, dm *daemon.Daemon, withWeb bool) error {
	logFile := cfg.Log.File
	if logFile == "" && os.Getenv(daemonChildEnv) == "1" {
		logFile = daemonLogFile(cfg)
	}
	logger, err := logging.New(cfg.Log.Level, logFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := dm.WritePID(); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	defer dm.RemovePID()

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	if err := db.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	repo := database.NewRepository(db)

	be, err := backend.New()
	if err != nil {
		return err
	}
	defer be.Close()
	logger.Info("screen backend ready", zap.String("platform", be.PlatformName()))

	eng := engine.New(cfg, be, be, be, repo, logger)
	if bindings, err := repo.LoadBindings(); err != nil {
		logger.Warn("failed to load corner bindings", zap.Error(err))
	} else {
		eng.SetBindings(bindings)
	}

	permStop := make(chan struct{})
	defer close(permStop)
	if cfg.Engine.Autostart {
		if err := eng.Start(); err != nil {
			if !errors.Is(err, engine.ErrPermissionDenied) {
				return err
			}
			logger.Warn("waiting for accessibility permission")
			go watchPermission(eng, logger, permStop)
		}
	}
	defer eng.Stop()

	waker := engine.NewWakeWatcher(wakeProbeInterval, wakeSlack, func(gap time.Duration) {
		if eng.Active() {
			if err := eng.Restart(); err != nil {
				logger.Warn("failed to restart after wake", zap.Error(err))
			}
		}
	}, logger)
	waker.Start()
	defer waker.Stop()

	var webServer *web.Server
	if withWeb && cfg.Web.Enabled {
		webServer = web.NewServer(cfg, eng, repo, logger, 0)
		go func() {
			if err := webServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("web server failed", zap.Error(err))
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	for {
		sig := <-sigCh
		if sig == syscall.SIGHUP {
			// Reload picks up binding changes made by the CLI. Config file
			// changes need a process restart; the engine reads its timing
			// values from its own goroutine and swapping them underneath
			// is not safe.
			if bindings, err := repo.LoadBindings(); err != nil {
				logger.Warn("failed to reload corner bindings", zap.Error(err))
			} else {
				eng.SetBindings(bindings)
				logger.Info("corner bindings reloaded")
			}
			if eng.Active() {
				if err := eng.Restart(); err != nil {
					logger.Warn("failed to restart after reload", zap.Error(err))
				}
			}
			continue
		}
		logger.Info("shutting down", zap.String("signal", sig.String()))
		break
	}

	if webServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := webServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("web server shutdown failed", zap.Error(err))
		}
	}
	return nil
}

// watchPermission starts monitoring as soon as the user grants cursor
// access, then exits. It also exits if monitoring comes up some other way
// (say, from the dashboard), so the ticker never outlives its purpose.
func watchPermission(eng *engine.Engine, logger *zap.Logger, stop <-chan struct{}) {
	ticker := time.NewTicker(permissionRecheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if eng.Active() || eng.PermissionGranted() {
				return
			}
			if !eng.CheckPermission(false) {
				continue
			}
			if err := eng.Start(); err != nil {
				logger.Warn("failed to start after permission grant", zap.Error(err))
				continue
			}
			logger.Info("accessibility permission granted, monitoring started")
			return
		}
	}
}
