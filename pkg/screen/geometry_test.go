package screen

import "testing"

func TestRectEdges(t *testing.T) {
	r := Rect{X: 100, Y: -50, W: 1920, H: 1080}

	if got := r.MinX(); got != 100 {
		t.Errorf("MinX() = %v, want %v", got, 100.0)
	}
	if got := r.MaxX(); got != 2020 {
		t.Errorf("MaxX() = %v, want %v", got, 2020.0)
	}
	if got := r.MinY(); got != -50 {
		t.Errorf("MinY() = %v, want %v", got, -50.0)
	}
	if got := r.MaxY(); got != 1030 {
		t.Errorf("MaxY() = %v, want %v", got, 1030.0)
	}
}

func TestFlipPoint(t *testing.T) {
	tests := []struct {
		name string
		base float64
		in   Point
		want Point
	}{
		{
			name: "top-left of primary maps to high y",
			base: 1080,
			in:   Point{X: 0, Y: 0},
			want: Point{X: 0, Y: 1080},
		},
		{
			name: "bottom of primary maps to zero",
			base: 1080,
			in:   Point{X: 640, Y: 1080},
			want: Point{X: 640, Y: 0},
		},
		{
			name: "secondary display above primary goes negative in y-down",
			base: 1080,
			in:   Point{X: 200, Y: -400},
			want: Point{X: 200, Y: 1480},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FlipPoint(tt.base, tt.in)
			if got != tt.want {
				t.Errorf("FlipPoint(%v, %v) = %v, want %v", tt.base, tt.in, got, tt.want)
			}
		})
	}
}

func TestFlipRect(t *testing.T) {
	tests := []struct {
		name string
		base float64
		in   Rect
		want Rect
	}{
		{
			name: "primary display maps onto origin",
			base: 1080,
			in:   Rect{X: 0, Y: 0, W: 1920, H: 1080},
			want: Rect{X: 0, Y: 0, W: 1920, H: 1080},
		},
		{
			name: "display to the right keeps its x offset",
			base: 1080,
			in:   Rect{X: 1920, Y: 0, W: 2560, H: 1440},
			want: Rect{X: 1920, Y: -360, W: 2560, H: 1440},
		},
		{
			name: "shorter display aligned to the top edge",
			base: 1080,
			in:   Rect{X: 1920, Y: 0, W: 1280, H: 720},
			want: Rect{X: 1920, Y: 360, W: 1280, H: 720},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FlipRect(tt.base, tt.in)
			if got != tt.want {
				t.Errorf("FlipRect(%v, %v) = %v, want %v", tt.base, tt.in, got, tt.want)
			}
		})
	}
}

func TestFlipPointRoundTrip(t *testing.T) {
	base := 1080.0
	in := Point{X: 123, Y: 456}

	if got := FlipPoint(base, FlipPoint(base, in)); got != in {
		t.Errorf("double flip = %v, want %v", got, in)
	}
}
