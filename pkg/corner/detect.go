package corner

import "github.com/hotcorners/hotcorners/pkg/screen"

// Hit is a successful corner match: which corner, and on which display.
type Hit struct {
	Corner  Corner
	Display screen.Display
}

// Detect checks the cursor against every corner of every display. A corner
// matches when the cursor is within tolerance of both of its edges; the
// comparison is inclusive, so a cursor exactly tolerance away still counts.
//
// Displays are scanned in order and within a display corners are checked
// top-left, top-right, bottom-left, bottom-right, so when adjacent displays
// share an edge the earlier display wins deterministically.
func Detect(cursor screen.Point, displays []screen.Display, tolerance float64) (Hit, bool) {
	for _, d := range displays {
		b := d.Bounds

		left := cursor.X <= b.MinX()+tolerance
		right := cursor.X >= b.MaxX()-tolerance
		top := cursor.Y >= b.MaxY()-tolerance
		bottom := cursor.Y <= b.MinY()+tolerance

		switch {
		case left && top:
			return Hit{Corner: TopLeft, Display: d}, true
		case right && top:
			return Hit{Corner: TopRight, Display: d}, true
		case left && bottom:
			return Hit{Corner: BottomLeft, Display: d}, true
		case right && bottom:
			return Hit{Corner: BottomRight, Display: d}, true
		}
	}
	return Hit{}, false
}
