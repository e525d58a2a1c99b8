package corner

import "fmt"

// Corner identifies one of the four corners of a display.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// cornerNames maps corners to their canonical string form. These strings
// are used as config keys, database values and API identifiers, so they
// must stay stable.
var cornerNames = map[Corner]string{
	TopLeft:     "top-left",
	TopRight:    "top-right",
	BottomLeft:  "bottom-left",
	BottomRight: "bottom-right",
}

// String returns the canonical name of the corner.
func (c Corner) String() string {
	if name, ok := cornerNames[c]; ok {
		return name
	}
	return fmt.Sprintf("corner(%d)", int(c))
}

// IsValid returns true for the four known corners.
func (c Corner) IsValid() bool {
	_, ok := cornerNames[c]
	return ok
}

// Parse converts a corner name back to its Corner value.
func Parse(name string) (Corner, error) {
	for c, n := range cornerNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown corner %q", name)
}

// Corners returns all corners in a stable order.
func Corners() []Corner {
	return []Corner{TopLeft, TopRight, BottomLeft, BottomRight}
}

// Action is what a corner does when triggered: launch the application at
// Path. Name is the human-readable label shown in listings; Icon is an
// optional icon reference for presentation layers.
type Action struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// IsAssigned returns true when the action launches something.
func (a Action) IsAssigned() bool {
	return a.Path != ""
}

// Bindings maps every corner to its action. A corner with a zero Action is
// unassigned. Bindings are total: all four corners are always present.
type Bindings map[Corner]Action

// NewBindings returns bindings with all four corners unassigned.
func NewBindings() Bindings {
	b := make(Bindings, 4)
	for _, c := range Corners() {
		b[c] = Action{}
	}
	return b
}

// Normalize fills in any missing corners so the map is total again.
func (b Bindings) Normalize() {
	for _, c := range Corners() {
		if _, ok := b[c]; !ok {
			b[c] = Action{}
		}
	}
}

// Assigned returns the number of corners with an action bound.
func (b Bindings) Assigned() int {
	n := 0
	for _, a := range b {
		if a.IsAssigned() {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the bindings.
func (b Bindings) Clone() Bindings {
	out := make(Bindings, len(b))
	for c, a := range b {
		out[c] = a
	}
	return out
}
