//go:build linux

package backend

import (
	"fmt"

	"github.com/hotcorners/hotcorners/pkg/integrations/x11"
	"github.com/hotcorners/hotcorners/pkg/screen"
)

// New returns the backend for the current display server. Wayland
// sessions normally export DISPLAY through XWayland and are served by
// the X11 backend like any other X session.
func New() (screen.Backend, error) {
	b := x11.NewBackend()
	if b.IsAvailable() {
		return b, nil
	}

	server := DetectDisplayServer()
	if server == "wayland" {
		return nil, fmt.Errorf("wayland session without XWayland is not supported")
	}
	return nil, fmt.Errorf("no X server reachable (display server: %s)", server)
}
