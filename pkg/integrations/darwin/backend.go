//go:build darwin

// Package darwin queries cursor and display geometry through CoreGraphics
// and launches applications with the open command.
package darwin

/*
#cgo LDFLAGS: -framework CoreGraphics -framework ApplicationServices
#include <CoreGraphics/CoreGraphics.h>
#include <ApplicationServices/ApplicationServices.h>

static int axTrusted(int prompt) {
	if (!prompt) {
		return AXIsProcessTrusted() ? 1 : 0;
	}
	const void *keys[] = { kAXTrustedCheckOptionPrompt };
	const void *values[] = { kCFBooleanTrue };
	CFDictionaryRef options = CFDictionaryCreate(kCFAllocatorDefault, keys, values, 1,
		&kCFCopyStringDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
	int trusted = AXIsProcessTrustedWithOptions(options) ? 1 : 0;
	CFRelease(options);
	return trusted;
}

static int cursorLocation(double *x, double *y) {
	CGEventRef event = CGEventCreate(NULL);
	if (event == NULL) {
		return -1;
	}
	CGPoint loc = CGEventGetLocation(event);
	CFRelease(event);
	*x = loc.x;
	*y = loc.y;
	return 0;
}

static int displayList(uint32_t *ids, double *xs, double *ys, double *ws, double *hs, int max) {
	CGDirectDisplayID active[32];
	uint32_t count = 0;
	if (max > 32) {
		max = 32;
	}
	if (CGGetActiveDisplayList((uint32_t)max, active, &count) != kCGErrorSuccess) {
		return -1;
	}
	for (uint32_t i = 0; i < count; i++) {
		CGRect bounds = CGDisplayBounds(active[i]);
		ids[i] = (uint32_t)active[i];
		xs[i] = bounds.origin.x;
		ys[i] = bounds.origin.y;
		ws[i] = bounds.size.width;
		hs[i] = bounds.size.height;
	}
	return (int)count;
}

static uint32_t mainDisplay(void) {
	return (uint32_t)CGMainDisplayID();
}
*/
import "C"

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/hotcorners/hotcorners/pkg/screen"
)

const maxDisplays = 32

// Backend implements screen.Backend for macOS.
type Backend struct{}

// NewBackend creates a macOS backend.
func NewBackend() *Backend {
	return &Backend{}
}

// CursorPosition returns the pointer position in y-up global coordinates.
// CoreGraphics reports event locations with the origin at the top-left of
// the main display, so the y axis is flipped against the main display's
// height.
func (b *Backend) CursorPosition() (screen.Point, error) {
	var x, y C.double
	if C.cursorLocation(&x, &y) != 0 {
		return screen.Point{}, fmt.Errorf("failed to read cursor location")
	}

	base, err := b.flipBase()
	if err != nil {
		return screen.Point{}, err
	}

	native := screen.Point{X: float64(x), Y: float64(y)}
	return screen.FlipPoint(base, native), nil
}

// Displays returns every active display in y-up coordinates.
func (b *Backend) Displays() ([]screen.Display, error) {
	native, main, err := nativeDisplays()
	if err != nil {
		return nil, err
	}

	base := nativeFlipBase(native, main)
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

// nativeDisplays returns display rectangles in CoreGraphics coordinates
// along with the main display ID.
func nativeDisplays() ([]screen.Display, int, error) {
	var (
		ids            [maxDisplays]C.uint32_t
		xs, ys, ws, hs [maxDisplays]C.double
	)

	n := C.displayList(&ids[0], &xs[0], &ys[0], &ws[0], &hs[0], C.int(maxDisplays))
	if n < 0 {
		return nil, 0, fmt.Errorf("failed to list active displays")
	}

	main := int(C.mainDisplay())
	displays := make([]screen.Display, int(n))
	for i := 0; i < int(n); i++ {
		displays[i] = screen.Display{
			ID: int(ids[i]),
			Bounds: screen.Rect{
				X: float64(xs[i]),
				Y: float64(ys[i]),
				W: float64(ws[i]),
				H: float64(hs[i]),
			},
			Primary: int(ids[i]) == main,
		}
	}
	return displays, main, nil
}

func (b *Backend) flipBase() (float64, error) {
	native, main, err := nativeDisplays()
	if err != nil {
		return 0, err
	}
	return nativeFlipBase(native, main), nil
}

func nativeFlipBase(native []screen.Display, main int) float64 {
	for _, d := range native {
		if d.ID == main {
			return d.Bounds.Y + d.Bounds.H
		}
	}
	if len(native) > 0 {
		return native[0].Bounds.Y + native[0].Bounds.H
	}
	return 0
}

// IsAvailable reports whether the display list can be read.
func (b *Backend) IsAvailable() bool {
	_, _, err := nativeDisplays()
	return err == nil
}

// PlatformName returns "darwin".
func (b *Backend) PlatformName() string {
	return "darwin"
}

// CheckPermission reports whether the process is trusted for accessibility
// access. With prompt set, the system permission dialog is shown when the
// process is not yet trusted.
func (b *Backend) CheckPermission(prompt bool) bool {
	flag := C.int(0)
	if prompt {
		flag = C.int(1)
	}
	return C.axTrusted(flag) != 0
}

// Launch opens the application at path through LaunchServices. The open
// command exits once the launch is handed off, so waiting on it only
// surfaces resolution failures.
func (b *Backend) Launch(path string) error {
	args := launchArgs(path)

	out, err := exec.Command("open", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to launch %s: %w (%s)", path, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// launchArgs builds the open argument list. Application bundles and bare
// application names go through -a; anything else is opened directly.
func launchArgs(path string) []string {
	if strings.HasSuffix(path, ".app") || !strings.Contains(path, "/") {
		return []string{"-a", path}
	}
	return []string{path}
}

// Close releases backend resources. The macOS backend holds none.
func (b *Backend) Close() error {
	return nil
}
