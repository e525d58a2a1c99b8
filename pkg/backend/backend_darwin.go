//go:build darwin

package backend

import (
	"github.com/hotcorners/hotcorners/pkg/integrations/darwin"
	"github.com/hotcorners/hotcorners/pkg/screen"
)

// New returns the CoreGraphics backend.
func New() (screen.Backend, error) {
	return darwin.NewBackend(), nil
}
