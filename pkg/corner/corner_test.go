package corner

import "testing"

func TestCornerString(t *testing.T) {
	tests := []struct {
		corner Corner
		want   string
	}{
		{TopLeft, "top-left"},
		{TopRight, "top-right"},
		{BottomLeft, "bottom-left"},
		{BottomRight, "bottom-right"},
		{Corner(42), "corner(42)"},
	}

	for _, tt := range tests {
		if got := tt.corner.String(); got != tt.want {
			t.Errorf("Corner(%d).String() = %q, want %q", int(tt.corner), got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	for _, c := range Corners() {
		got, err := Parse(c.String())
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", c.String(), err)
		}
		if got != c {
			t.Errorf("Parse(%q) = %v, want %v", c.String(), got, c)
		}
	}

	if _, err := Parse("middle"); err == nil {
		t.Error("Parse(\"middle\") should return an error")
	}
	if _, err := Parse(""); err == nil {
		t.Error("Parse(\"\") should return an error")
	}
}

func TestIsValid(t *testing.T) {
	for _, c := range Corners() {
		if !c.IsValid() {
			t.Errorf("%v should be valid", c)
		}
	}
	if Corner(-1).IsValid() {
		t.Error("Corner(-1) should not be valid")
	}
	if Corner(4).IsValid() {
		t.Error("Corner(4) should not be valid")
	}
}

func TestNewBindings(t *testing.T) {
	b := NewBindings()

	if len(b) != 4 {
		t.Fatalf("NewBindings() has %d entries, want 4", len(b))
	}
	for _, c := range Corners() {
		a, ok := b[c]
		if !ok {
			t.Errorf("NewBindings() missing %v", c)
		}
		if a.IsAssigned() {
			t.Errorf("NewBindings()[%v] should be unassigned", c)
		}
	}
	if got := b.Assigned(); got != 0 {
		t.Errorf("Assigned() = %d, want 0", got)
	}
}

func TestBindingsNormalize(t *testing.T) {
	b := Bindings{
		TopLeft: Action{Name: "Terminal", Path: "/usr/bin/xterm"},
	}
	b.Normalize()

	if len(b) != 4 {
		t.Fatalf("Normalize() left %d entries, want 4", len(b))
	}
	if !b[TopLeft].IsAssigned() {
		t.Error("Normalize() should keep existing assignments")
	}
	if b[BottomRight].IsAssigned() {
		t.Error("Normalize() should add missing corners as unassigned")
	}
	if got := b.Assigned(); got != 1 {
		t.Errorf("Assigned() = %d, want 1", got)
	}
}

func TestBindingsClone(t *testing.T) {
	orig := NewBindings()
	orig[TopRight] = Action{Name: "Files", Path: "/usr/bin/nautilus"}

	clone := orig.Clone()
	clone[TopRight] = Action{}

	if !orig[TopRight].IsAssigned() {
		t.Error("mutating the clone should not affect the original")
	}
}
