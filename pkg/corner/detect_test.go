package corner

import (
	"testing"

	"github.com/hotcorners/hotcorners/pkg/screen"
)

func singleDisplay() []screen.Display {
	return []screen.Display{
		{ID: 0, Bounds: screen.Rect{X: 0, Y: 0, W: 1920, H: 1080}, Primary: true},
	}
}

func TestDetectSingleDisplay(t *testing.T) {
	tests := []struct {
		name    string
		cursor  screen.Point
		want    Corner
		wantHit bool
	}{
		{
			name:    "near top-left",
			cursor:  screen.Point{X: 5, Y: 1078},
			want:    TopLeft,
			wantHit: true,
		},
		{
			name:    "near top-right",
			cursor:  screen.Point{X: 1917, Y: 1075},
			want:    TopRight,
			wantHit: true,
		},
		{
			name:    "near bottom-left",
			cursor:  screen.Point{X: 3, Y: 12},
			want:    BottomLeft,
			wantHit: true,
		},
		{
			name:    "near bottom-right",
			cursor:  screen.Point{X: 1915, Y: 3},
			want:    BottomRight,
			wantHit: true,
		},
		{
			name:    "center of the display",
			cursor:  screen.Point{X: 960, Y: 540},
			wantHit: false,
		},
		{
			name:    "along the top edge but away from corners",
			cursor:  screen.Point{X: 960, Y: 1079},
			wantHit: false,
		},
		{
			name:    "along the left edge but away from corners",
			cursor:  screen.Point{X: 0, Y: 540},
			wantHit: false,
		},
		{
			name:    "exactly on the tolerance boundary",
			cursor:  screen.Point{X: 20, Y: 1060},
			want:    TopLeft,
			wantHit: true,
		},
		{
			name:    "one past the tolerance boundary",
			cursor:  screen.Point{X: 21, Y: 1060},
			wantHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := Detect(tt.cursor, singleDisplay(), 20)
			if ok != tt.wantHit {
				t.Fatalf("Detect(%v) hit = %v, want %v", tt.cursor, ok, tt.wantHit)
			}
			if ok && hit.Corner != tt.want {
				t.Errorf("Detect(%v) = %v, want %v", tt.cursor, hit.Corner, tt.want)
			}
		})
	}
}

func TestDetectSharedEdgeFirstDisplayWins(t *testing.T) {
	displays := []screen.Display{
		{ID: 0, Bounds: screen.Rect{X: 0, Y: 0, W: 1920, H: 1080}, Primary: true},
		{ID: 1, Bounds: screen.Rect{X: 1920, Y: 0, W: 1920, H: 1080}},
	}

	// Within tolerance of display 0's top-right and display 1's top-left.
	cursor := screen.Point{X: 1915, Y: 1075}

	hit, ok := Detect(cursor, displays, 20)
	if !ok {
		t.Fatalf("Detect(%v) missed, want a hit", cursor)
	}
	if hit.Corner != TopRight {
		t.Errorf("Detect(%v) = %v, want %v", cursor, hit.Corner, TopRight)
	}
	if hit.Display.ID != 0 {
		t.Errorf("Detect(%v) matched display %d, want 0", cursor, hit.Display.ID)
	}
}

func TestDetectSecondDisplay(t *testing.T) {
	// The second display is shorter and vertically centered, so its top
	// corner sits well inside the first display's vertical margins and
	// only the second display can match.
	displays := []screen.Display{
		{ID: 0, Bounds: screen.Rect{X: 0, Y: 0, W: 1920, H: 1080}, Primary: true},
		{ID: 1, Bounds: screen.Rect{X: 1920, Y: 300, W: 1280, H: 720}},
	}

	cursor := screen.Point{X: 3195, Y: 1015}

	hit, ok := Detect(cursor, displays, 20)
	if !ok {
		t.Fatalf("Detect(%v) missed, want a hit", cursor)
	}
	if hit.Corner != TopRight {
		t.Errorf("Detect(%v) = %v, want %v", cursor, hit.Corner, TopRight)
	}
	if hit.Display.ID != 1 {
		t.Errorf("Detect(%v) matched display %d, want 1", cursor, hit.Display.ID)
	}
}

func TestDetectDisplayWithNegativeOrigin(t *testing.T) {
	displays := []screen.Display{
		{ID: 0, Bounds: screen.Rect{X: -1920, Y: 0, W: 1920, H: 1080}},
	}

	hit, ok := Detect(screen.Point{X: -1918, Y: 2}, displays, 20)
	if !ok {
		t.Fatal("bottom-left of a negative-origin display should match")
	}
	if hit.Corner != BottomLeft {
		t.Errorf("Detect() = %v, want %v", hit.Corner, BottomLeft)
	}
}

func TestDetectTinyDisplayPrefersTopLeft(t *testing.T) {
	// When tolerance covers the whole display every corner matches; the
	// scan order makes the result deterministic.
	displays := []screen.Display{
		{ID: 0, Bounds: screen.Rect{X: 0, Y: 0, W: 30, H: 30}},
	}

	hit, ok := Detect(screen.Point{X: 15, Y: 15}, displays, 20)
	if !ok {
		t.Fatal("cursor inside a tiny display should match")
	}
	if hit.Corner != TopLeft {
		t.Errorf("Detect() = %v, want %v", hit.Corner, TopLeft)
	}
}

func TestDetectZeroTolerance(t *testing.T) {
	hit, ok := Detect(screen.Point{X: 0, Y: 1080}, singleDisplay(), 0)
	if !ok {
		t.Fatal("exact corner should match even with zero tolerance")
	}
	if hit.Corner != TopLeft {
		t.Errorf("Detect() = %v, want %v", hit.Corner, TopLeft)
	}

	if _, ok := Detect(screen.Point{X: 1, Y: 1080}, singleDisplay(), 0); ok {
		t.Error("one pixel off an exact corner should not match with zero tolerance")
	}
}

func TestDetectNoDisplays(t *testing.T) {
	if _, ok := Detect(screen.Point{X: 0, Y: 0}, nil, 20); ok {
		t.Error("no displays should never match")
	}
}
