//go:build windows

package backend

import (
	"github.com/hotcorners/hotcorners/pkg/integrations/win"
	"github.com/hotcorners/hotcorners/pkg/screen"
)

// New returns the user32 backend.
func New() (screen.Backend, error) {
	return win.NewBackend(), nil
}
