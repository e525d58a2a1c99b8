//go:build windows

// Package win queries cursor and display geometry through user32 and
// launches applications with the start command.
package win

import (
	"fmt"
	"os/exec"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/hotcorners/hotcorners/pkg/screen"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procGetCursorPos        = user32.NewProc("GetCursorPos")
	procEnumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW     = user32.NewProc("GetMonitorInfoW")
)

const monitorinfofPrimary = 0x1

type winPoint struct {
	X int32
	Y int32
}

type winRect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

type monitorInfoExW struct {
	Size    uint32
	Monitor winRect
	Work    winRect
	Flags   uint32
	Device  [32]uint16
}

type nativeMonitor struct {
	bounds  screen.Rect
	primary bool
}

// Callback slots are never released, so the enumeration callback is
// created once and feeds a guarded package-level accumulator.
var (
	enumMu      sync.Mutex
	enumResults []nativeMonitor

	enumCallbackOnce sync.Once
	enumCallback     uintptr
)

func monitorEnumProc(hMonitor, hdc, lprc, lparam uintptr) uintptr {
	var mi monitorInfoExW
	mi.Size = uint32(unsafe.Sizeof(mi))

	ret, _, _ := procGetMonitorInfoW.Call(hMonitor, uintptr(unsafe.Pointer(&mi)))
	if ret != 0 {
		enumResults = append(enumResults, nativeMonitor{
			bounds: screen.Rect{
				X: float64(mi.Monitor.Left),
				Y: float64(mi.Monitor.Top),
				W: float64(mi.Monitor.Right - mi.Monitor.Left),
				H: float64(mi.Monitor.Bottom - mi.Monitor.Top),
			},
			primary: mi.Flags&monitorinfofPrimary != 0,
		})
	}
	return 1
}

// Backend implements screen.Backend for Windows.
type Backend struct{}

// NewBackend creates a Windows backend.
func NewBackend() *Backend {
	return &Backend{}
}

// CursorPosition returns the pointer position in y-up global coordinates.
// Windows reports virtual-screen coordinates with the origin at the
// primary monitor's top-left, so the y axis is flipped against the
// primary monitor's bottom edge.
func (b *Backend) CursorPosition() (screen.Point, error) {
	var pt winPoint
	ret, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ret == 0 {
		return screen.Point{}, fmt.Errorf("failed to read cursor position: %w", err)
	}

	native, err := nativeMonitors()
	if err != nil {
		return screen.Point{}, err
	}

	base := nativeFlipBase(native)
	return screen.FlipPoint(base, screen.Point{X: float64(pt.X), Y: float64(pt.Y)}), nil
}

// Displays returns every monitor in y-up coordinates, primary first.
func (b *Backend) Displays() ([]screen.Display, error) {
	native, err := nativeMonitors()
	if err != nil {
		return nil, err
	}

	base := nativeFlipBase(native)
	displays := make([]screen.Display, 0, len(native))
	for _, m := range orderPrimaryFirst(native) {
		displays = append(displays, screen.Display{
			ID:      len(displays),
			Bounds:  screen.FlipRect(base, m.bounds),
			Primary: m.primary,
		})
	}
	return displays, nil
}

// nativeMonitors enumerates monitors in virtual-screen coordinates.
func nativeMonitors() ([]nativeMonitor, error) {
	enumCallbackOnce.Do(func() {
		enumCallback = windows.NewCallback(monitorEnumProc)
	})

	enumMu.Lock()
	defer enumMu.Unlock()

	enumResults = nil
	ret, _, err := procEnumDisplayMonitors.Call(0, 0, enumCallback, 0)
	if ret == 0 {
		return nil, fmt.Errorf("failed to enumerate monitors: %w", err)
	}
	if len(enumResults) == 0 {
		return nil, fmt.Errorf("no monitors reported")
	}

	monitors := make([]nativeMonitor, len(enumResults))
	copy(monitors, enumResults)
	return monitors, nil
}

func orderPrimaryFirst(monitors []nativeMonitor) []nativeMonitor {
	ordered := make([]nativeMonitor, 0, len(monitors))
	for _, m := range monitors {
		if m.primary {
			ordered = append(ordered, m)
		}
	}
	for _, m := range monitors {
		if !m.primary {
			ordered = append(ordered, m)
		}
	}
	return ordered
}

func nativeFlipBase(monitors []nativeMonitor) float64 {
	for _, m := range monitors {
		if m.primary {
			return m.bounds.Y + m.bounds.H
		}
	}
	if len(monitors) > 0 {
		return monitors[0].bounds.Y + monitors[0].bounds.H
	}
	return 0
}

// IsAvailable reports whether monitors can be enumerated.
func (b *Backend) IsAvailable() bool {
	_, err := nativeMonitors()
	return err == nil
}

// PlatformName returns "windows".
func (b *Backend) PlatformName() string {
	return "windows"
}

// CheckPermission always reports true. Windows does not gate cursor
// polling behind a permission, so prompt has no effect.
func (b *Backend) CheckPermission(prompt bool) bool {
	return true
}

// Launch opens the application at path through the shell. The empty
// argument after start is the window title slot so paths with spaces are
// not mistaken for one.
func (b *Backend) Launch(path string) error {
	cmd := exec.Command("cmd", "/c", "start", "", path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", path, err)
	}

	go cmd.Wait()
	return nil
}

// Close releases backend resources. The Windows backend holds none.
func (b *Backend) Close() error {
	return nil
}
