package detection

import (
	"fmt"
	"image"
)

// Rect is an axis-aligned region bounding box.
//
// Both edges are inclusive: a Rect covers columns X..X+W and rows Y..Y+H, so
// it spans (W+1)×(H+1) pixels. Rect{3, 3, 3, 3} covers pixels (3,3) to (6,6).
type Rect struct {
	X int `json:"x" yaml:"x"` // Left column (inclusive)
	Y int `json:"y" yaml:"y"` // Top row (inclusive)
	W int `json:"w" yaml:"w"` // Offset from X to the right column (inclusive)
	H int `json:"h" yaml:"h"` // Offset from Y to the bottom row (inclusive)
}

// Contains reports whether (x, y) lies within the rectangle, edges included.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x <= r.X+r.W &&
		y >= r.Y && y <= r.Y+r.H
}

// SkipPast returns the scan position one column past the right edge of r on
// row y. It is only meaningful when the current position is inside r.
func (r Rect) SkipPast(y int) (int, int) {
	return r.X + r.W + 1, y
}

// Bounds converts r to the equivalent half-open image.Rectangle.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W+1, r.Y+r.H+1)
}

// String formats r as the tuple "(x, y, w, h)".
func (r Rect) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", r.X, r.Y, r.W, r.H)
}
