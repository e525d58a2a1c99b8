// Package x11 queries cursor and display geometry over the X protocol and
// launches applications for Linux desktops.
package x11

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xinerama"
	"github.com/jezek/xgb/xproto"

	"github.com/hotcorners/hotcorners/pkg/screen"
)

// Backend implements screen.Backend for X11.
type Backend struct {
	mu             sync.Mutex
	conn           *xgb.Conn
	root           xproto.Window
	rootWidth      uint16
	rootHeight     uint16
	xineramaActive bool
}

// NewBackend creates an X11 backend. The connection is established lazily
// on first use and re-established after errors, so a backend built before
// the X server is ready (or across a sleep/wake cycle) recovers on its
// own.
func NewBackend() *Backend {
	return &Backend{}
}

func (b *Backend) ensureConn() (*xgb.Conn, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn != nil {
		return b.conn, nil
	}

	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	defaultScreen := xproto.Setup(conn).DefaultScreen(conn)
	b.root = defaultScreen.Root
	b.rootWidth = defaultScreen.WidthInPixels
	b.rootHeight = defaultScreen.HeightInPixels

	b.xineramaActive = false
	if err := xinerama.Init(conn); err == nil {
		if reply, err := xinerama.IsActive(conn).Reply(); err == nil && reply.State != 0 {
			b.xineramaActive = true
		}
	}

	b.conn = conn
	return conn, nil
}

// invalidate drops the connection so the next call reconnects.
func (b *Backend) invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn != nil {
		b.conn.Close()
		b.conn = nil
	}
}

// CursorPosition returns the pointer position in y-up global coordinates.
func (b *Backend) CursorPosition() (screen.Point, error) {
	conn, err := b.ensureConn()
	if err != nil {
		return screen.Point{}, err
	}

	reply, err := xproto.QueryPointer(conn, b.root).Reply()
	if err != nil {
		b.invalidate()
		return screen.Point{}, fmt.Errorf("failed to query pointer: %w", err)
	}

	base, err := b.flipBase(conn)
	if err != nil {
		return screen.Point{}, err
	}

	native := screen.Point{X: float64(reply.RootX), Y: float64(reply.RootY)}
	return screen.FlipPoint(base, native), nil
}

// Displays returns every display in y-up coordinates, primary first.
func (b *Backend) Displays() ([]screen.Display, error) {
	conn, err := b.ensureConn()
	if err != nil {
		return nil, err
	}

	native, err := b.nativeDisplays(conn)
	if err != nil {
		return nil, err
	}

	base := nativeFlipBase(native)
	displays := make([]screen.Display, len(native))
	for i, d := range native {
		displays[i] = screen.Display{
			ID:      d.ID,
			Bounds:  screen.FlipRect(base, d.Bounds),
			Primary: d.Primary,
		}
	}
	return displays, nil
}

// nativeDisplays returns display rectangles in X's y-down coordinates. The
// first Xinerama screen is the primary; without Xinerama the root window
// is the only display.
func (b *Backend) nativeDisplays(conn *xgb.Conn) ([]screen.Display, error) {
	b.mu.Lock()
	useXinerama := b.xineramaActive
	rootW, rootH := b.rootWidth, b.rootHeight
	b.mu.Unlock()

	if useXinerama {
		reply, err := xinerama.QueryScreens(conn).Reply()
		if err != nil {
			b.invalidate()
			return nil, fmt.Errorf("failed to query xinerama screens: %w", err)
		}
		if len(reply.ScreenInfo) > 0 {
			displays := make([]screen.Display, len(reply.ScreenInfo))
			for i, info := range reply.ScreenInfo {
				displays[i] = screen.Display{
					ID: i,
					Bounds: screen.Rect{
						X: float64(info.XOrg),
						Y: float64(info.YOrg),
						W: float64(info.Width),
						H: float64(info.Height),
					},
					Primary: i == 0,
				}
			}
			return displays, nil
		}
	}

	return []screen.Display{
		{
			ID:      0,
			Bounds:  screen.Rect{X: 0, Y: 0, W: float64(rootW), H: float64(rootH)},
			Primary: true,
		},
	}, nil
}

// flipBase computes the primary display's bottom edge in native
// coordinates, which anchors the y-down to y-up conversion.
func (b *Backend) flipBase(conn *xgb.Conn) (float64, error) {
	native, err := b.nativeDisplays(conn)
	if err != nil {
		return 0, err
	}
	return nativeFlipBase(native), nil
}

func nativeFlipBase(native []screen.Display) float64 {
	for _, d := range native {
		if d.Primary {
			return d.Bounds.Y + d.Bounds.H
		}
	}
	if len(native) > 0 {
		return native[0].Bounds.Y + native[0].Bounds.H
	}
	return 0
}

// IsAvailable reports whether an X server can be reached.
func (b *Backend) IsAvailable() bool {
	if os.Getenv("DISPLAY") == "" {
		return false
	}
	_, err := b.ensureConn()
	return err == nil
}

// PlatformName returns "x11".
func (b *Backend) PlatformName() string {
	return "x11"
}

// CheckPermission reports whether the X server is reachable. X11 has no
// accessibility gate, so prompt has no effect.
func (b *Backend) CheckPermission(prompt bool) bool {
	_, err := b.ensureConn()
	return err == nil
}

// Launch starts the application at path without waiting for it to exit.
// Desktop entries are handed to gtk-launch; anything else is executed
// directly.
func (b *Backend) Launch(path string) error {
	name, args := launchCommand(path)

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", path, err)
	}

	// Reap the child once it exits.
	go cmd.Wait()
	return nil
}

// launchCommand maps an application path to the command that opens it.
func launchCommand(path string) (string, []string) {
	if strings.HasSuffix(path, ".desktop") {
		entry := strings.TrimSuffix(filepath.Base(path), ".desktop")
		return "gtk-launch", []string{entry}
	}
	return path, nil
}

// Close releases the X connection.
func (b *Backend) Close() error {
	b.invalidate()
	return nil
}
