package main

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/hotcorners/hotcorners/pkg/corner"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/usr/bin/firefox", "firefox"},
		{"/usr/share/applications/org.gnome.Calculator.desktop", "org.gnome.Calculator"},
		{`C:\Program Files\Editor\editor.exe`, "editor"},
		{"/Applications/Safari.app", "Safari"},
		{"firefox", "firefox"},
	}

	for _, tt := range tests {
		if got := displayName(tt.path); got != tt.want {
			t.Errorf("displayName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestResolveActionWithPath(t *testing.T) {
	action, err := resolveAction("/usr/bin/firefox", "")
	if err != nil {
		t.Fatalf("resolveAction failed: %v", err)
	}
	if action.Path != "/usr/bin/firefox" {
		t.Errorf("expected path to pass through, got %q", action.Path)
	}
	if action.Name != "firefox" {
		t.Errorf("expected derived name firefox, got %q", action.Name)
	}

	action, err = resolveAction("/usr/bin/firefox", "Web Browser")
	if err != nil {
		t.Fatalf("resolveAction failed: %v", err)
	}
	if action.Name != "Web Browser" {
		t.Errorf("expected explicit name to win, got %q", action.Name)
	}
}

func TestBindingsFileRoundTrip(t *testing.T) {
	bindings := corner.NewBindings()
	bindings[corner.TopLeft] = corner.Action{Name: "Terminal", Path: "/usr/bin/term"}
	bindings[corner.BottomRight] = corner.Action{Name: "Files", Path: "/usr/bin/files"}

	data, err := yaml.Marshal(bindingsFile{Corners: bindingsByName(bindings)})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var in bindingsFile
	if err := yaml.Unmarshal(data, &in); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(in.Corners) != 4 {
		t.Fatalf("expected all four corners in the file, got %d", len(in.Corners))
	}
	if in.Corners["top-left"].Path != "/usr/bin/term" {
		t.Errorf("top-left did not survive the round trip: %+v", in.Corners["top-left"])
	}
	if in.Corners["top-right"].IsAssigned() {
		t.Errorf("expected top-right to stay unassigned, got %+v", in.Corners["top-right"])
	}
}
