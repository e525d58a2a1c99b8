package backend

import (
	"os"
	"testing"
)

func TestDetectDisplayServer(t *testing.T) {
	tests := []struct {
		name           string
		sessionType    string
		waylandDisplay string
		x11Display     string
		want           string
	}{
		{
			name:           "Wayland session",
			sessionType:    "wayland",
			waylandDisplay: "wayland-0",
			x11Display:     "",
			want:           "wayland",
		},
		{
			name:           "X11 session",
			sessionType:    "x11",
			waylandDisplay: "",
			x11Display:     ":0",
			want:           "x11",
		},
		{
			name:           "Unknown session",
			sessionType:    "",
			waylandDisplay: "",
			x11Display:     "",
			want:           "unknown",
		},
		{
			name:           "Wayland display set",
			sessionType:    "",
			waylandDisplay: "wayland-1",
			x11Display:     "",
			want:           "wayland",
		},
		{
			name:           "X11 display set",
			sessionType:    "",
			waylandDisplay: "",
			x11Display:     ":1",
			want:           "x11",
		},
	}

	origSessionType := os.Getenv("XDG_SESSION_TYPE")
	origWaylandDisplay := os.Getenv("WAYLAND_DISPLAY")
	origX11Display := os.Getenv("DISPLAY")

	defer func() {
		os.Setenv("XDG_SESSION_TYPE", origSessionType)
		os.Setenv("WAYLAND_DISPLAY", origWaylandDisplay)
		os.Setenv("DISPLAY", origX11Display)
	}()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("XDG_SESSION_TYPE", tt.sessionType)
			os.Setenv("WAYLAND_DISPLAY", tt.waylandDisplay)
			os.Setenv("DISPLAY", tt.x11Display)

			if got := DetectDisplayServer(); got != tt.want {
				t.Errorf("DetectDisplayServer() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Logf("New() returned error (may be expected): %v", err)
		return
	}
	if b == nil {
		t.Fatal("New() returned nil backend without error")
	}
	defer b.Close()

	t.Logf("backend platform: %s", b.PlatformName())

	if b.IsAvailable() {
		displays, err := b.Displays()
		if err != nil {
			t.Logf("Displays() error: %v", err)
		} else {
			t.Logf("found %d display(s)", len(displays))
		}
	}
}
