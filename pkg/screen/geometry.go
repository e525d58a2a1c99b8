package screen

// Coordinates follow the Cocoa global-space convention: the origin sits at
// the bottom-left of the primary display and y grows upward. Backends whose
// native space is top-left/y-down (X11, Windows, CoreGraphics) convert with
// FlipPoint/FlipRect before handing geometry to callers.

// Point is a cursor position in global screen coordinates.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle: origin at the bottom-left corner.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.X }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MinY returns the bottom edge.
func (r Rect) MinY() float64 { return r.Y }

// MaxY returns the top edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Display describes one connected display. Bounds are full-frame
// coordinates, not the work area.
type Display struct {
	ID      int
	Bounds  Rect
	Primary bool
}

// FlipPoint converts a point from a y-down space to the shared y-up
// convention. base is the primary display's bottom edge in native
// coordinates.
func FlipPoint(base float64, p Point) Point {
	return Point{X: p.X, Y: base - p.Y}
}

// FlipRect converts a rectangle whose origin is its top-left corner in a
// y-down space into the shared y-up convention.
func FlipRect(base float64, r Rect) Rect {
	return Rect{X: r.X, Y: base - r.Y - r.H, W: r.W, H: r.H}
}
