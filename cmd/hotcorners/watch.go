package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"github.com/hotcorners/hotcorners/internal/config"
	"github.com/hotcorners/hotcorners/pkg/backend"
	"github.com/hotcorners/hotcorners/pkg/corner"
)

// watchCommand polls the cursor and prints corner hits without launching
// anything. Useful for checking permission and tuning the tolerance.
func watchCommand(ctx *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	be, err := backend.New()
	if err != nil {
		return err
	}
	defer be.Close()

	if !be.CheckPermission(false) {
		fmt.Println("Cursor access is not granted; positions may be unavailable.")
	}

	displays, err := be.Displays()
	if err != nil {
		return fmt.Errorf("failed to query displays: %w", err)
	}
	fmt.Printf("Platform: %s, %d display(s)\n", be.PlatformName(), len(displays))
	for _, d := range displays {
		marker := ""
		if d.Primary {
			marker = " (primary)"
		}
		fmt.Printf("  display %d: %.0fx%.0f at (%.0f, %.0f)%s\n",
			d.ID, d.Bounds.W, d.Bounds.H, d.Bounds.X, d.Bounds.Y, marker)
	}

	duration := ctx.Duration("duration")
	fmt.Printf("\nWatching corners for %s with tolerance %.0fpx. Move the cursor into a corner.\n\n",
		duration, cfg.Engine.Tolerance)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	ticker := time.NewTicker(cfg.Engine.PollInterval)
	defer ticker.Stop()
	timeout := time.After(duration)

	var lastHit corner.Corner = -1
	for {
		select {
		case <-timeout:
			fmt.Println("\nDone.")
			return nil
		case <-sigCh:
			fmt.Println("\nInterrupted.")
			return nil
		case <-ticker.C:
			pos, err := be.CursorPosition()
			if err != nil {
				fmt.Printf("cursor unavailable: %v\n", err)
				continue
			}
			hit, ok := corner.Detect(pos, displays, cfg.Engine.Tolerance)
			if !ok {
				lastHit = -1
				continue
			}
			if hit.Corner == lastHit {
				continue
			}
			lastHit = hit.Corner
			fmt.Printf("%s  %-12s display %d  cursor (%.0f, %.0f)\n",
				time.Now().Format("15:04:05"), hit.Corner, hit.Display.ID, pos.X, pos.Y)
		}
	}
}
