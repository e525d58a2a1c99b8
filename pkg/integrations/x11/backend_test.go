package x11

import (
	"testing"

	"github.com/hotcorners/hotcorners/pkg/screen"
)

var _ screen.Backend = (*Backend)(nil)

func TestLaunchCommand(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantCmd  string
		wantArgs []string
	}{
		{
			name:     "desktop entry",
			path:     "/usr/share/applications/firefox.desktop",
			wantCmd:  "gtk-launch",
			wantArgs: []string{"firefox"},
		},
		{
			name:     "bare desktop entry",
			path:     "org.gnome.Terminal.desktop",
			wantCmd:  "gtk-launch",
			wantArgs: []string{"org.gnome.Terminal"},
		},
		{
			name:     "plain executable",
			path:     "/usr/bin/xterm",
			wantCmd:  "/usr/bin/xterm",
			wantArgs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := launchCommand(tt.path)
			if cmd != tt.wantCmd {
				t.Errorf("launchCommand(%q) cmd = %q, want %q", tt.path, cmd, tt.wantCmd)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("launchCommand(%q) args = %v, want %v", tt.path, args, tt.wantArgs)
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("launchCommand(%q) args[%d] = %q, want %q", tt.path, i, args[i], tt.wantArgs[i])
				}
			}
		})
	}
}

func TestNativeFlipBase(t *testing.T) {
	tests := []struct {
		name     string
		displays []screen.Display
		want     float64
	}{
		{
			name: "primary only",
			displays: []screen.Display{
				{ID: 0, Bounds: screen.Rect{X: 0, Y: 0, W: 1920, H: 1080}, Primary: true},
			},
			want: 1080,
		},
		{
			name: "primary below secondary",
			displays: []screen.Display{
				{ID: 0, Bounds: screen.Rect{X: 0, Y: 1440, W: 1920, H: 1080}, Primary: true},
				{ID: 1, Bounds: screen.Rect{X: 0, Y: 0, W: 2560, H: 1440}},
			},
			want: 2520,
		},
		{
			name: "no primary flag falls back to first",
			displays: []screen.Display{
				{ID: 0, Bounds: screen.Rect{X: 0, Y: 0, W: 1280, H: 720}},
			},
			want: 720,
		},
		{
			name:     "empty",
			displays: nil,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nativeFlipBase(tt.displays); got != tt.want {
				t.Errorf("nativeFlipBase() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlatformName(t *testing.T) {
	b := NewBackend()
	if got := b.PlatformName(); got != "x11" {
		t.Errorf("PlatformName() = %q, want %q", got, "x11")
	}
}

func TestIsAvailableWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")

	b := NewBackend()
	if b.IsAvailable() {
		t.Error("IsAvailable() = true with empty DISPLAY, want false")
	}
}

// TestBackendLive exercises the real X connection when one is reachable.
func TestBackendLive(t *testing.T) {
	b := NewBackend()
	defer b.Close()

	if !b.IsAvailable() {
		t.Skip("no X server available")
	}

	pos, err := b.CursorPosition()
	if err != nil {
		t.Fatalf("CursorPosition() error = %v", err)
	}
	t.Logf("cursor at (%v, %v)", pos.X, pos.Y)

	displays, err := b.Displays()
	if err != nil {
		t.Fatalf("Displays() error = %v", err)
	}
	if len(displays) == 0 {
		t.Fatal("Displays() returned no displays")
	}
	for _, d := range displays {
		t.Logf("display %d: %+v primary=%v", d.ID, d.Bounds, d.Primary)
	}

	if !b.CheckPermission(false) {
		t.Error("CheckPermission(false) = false on a reachable X server")
	}
}
