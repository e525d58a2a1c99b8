//go:build !linux && !darwin && !windows

package backend

import (
	"fmt"
	"runtime"

	"github.com/hotcorners/hotcorners/pkg/screen"
)

// New reports that no backend exists for this platform.
func New() (screen.Backend, error) {
	return nil, fmt.Errorf("no screen backend for %s", runtime.GOOS)
}
