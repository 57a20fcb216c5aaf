package detection

import (
	"errors"
	"fmt"
)

// ErrTraceDiverged is returned when a boundary trace exceeds its step limit
// without returning to its seed or leaving the image.
var ErrTraceDiverged = errors.New("boundary trace did not converge")

// ambiguous marks the fully interior cell configuration in the lookup tables.
const ambiguous = 2

// Marching squares step directions indexed by cell configuration.
// Bit 3 is the current pixel, bit 2 the pixel to the left, bit 1 the pixel
// above and bit 0 the pixel diagonally up-left. Read-only.
var (
	lookupDX = [16]int{
		1, 0, 1, 1,
		-1, 0, -1, 1,
		0, 0, 0, 0,
		-1, 0, -1, ambiguous,
	}
	lookupDY = [16]int{
		0, -1, 0, 0,
		0, -1, 0, 0,
		1, -1, 1, 1,
		0, -1, 0, ambiguous,
	}
)

// Option configures Trace and FindRegions.
type Option func(*options)

type options struct {
	maxSteps int
}

// WithMaxSteps caps the number of steps a single boundary trace may take.
// Values <= 0 select the automatic limit, which is large enough that no
// trace that would eventually close is ever cut short.
func WithMaxSteps(n int) Option {
	return func(o *options) {
		o.maxSteps = n
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// stepLimit returns the trace step cap for a w×h mask.
//
// The walk is fully determined by the cursor position and the last recorded
// direction (unset or one of 9 values), so a trace still running after
// 10·w·h steps has entered a cycle that excludes its seed.
func (o options) stepLimit(w, h int) int {
	if o.maxSteps > 0 {
		return o.maxSteps
	}
	return 10*w*h + 1
}

// cornerBox is the running bounding box of recorded corners, in lattice
// coordinates. Lattice point (x, y) is the top-left corner of pixel (x, y).
type cornerBox struct {
	x, y, w, h int
}

func (b *cornerBox) extend(nx, ny int) {
	if nx <= b.x {
		right := b.x + b.w
		b.x = nx
		b.w = right - nx
	}
	if nx >= b.x+b.w {
		b.w = nx - b.x
	}

	if ny <= b.y {
		bottom := b.y + b.h
		b.y = ny
		b.h = bottom - ny
	}
	if ny >= b.y+b.h {
		b.h = ny - b.y
	}
}

// pixelRect converts the lattice box to inclusive pixel coordinates. The
// right and bottom lattice edges lie one unit past the last opaque pixel.
// A walk that leaves the image stops before recording the corners on its
// way out, so a region touching the right or bottom border comes back
// narrower than its pixels. Corners it did record still overshoot by one.
func (b cornerBox) pixelRect() Rect {
	return Rect{X: b.x, Y: b.y, W: max(b.w-1, 0), H: max(b.h-1, 0)}
}

// cellIndex builds the 4-bit configuration of the 2×2 neighbourhood whose
// bottom-right pixel is (x, y). Neighbours outside the mask count as clear.
func cellIndex(m *Mask, x, y int) int {
	i := 0
	if m.At(x, y) {
		i |= 8
	}
	if x > 0 && m.At(x-1, y) {
		i |= 4
	}
	if y > 0 && m.At(x, y-1) {
		i |= 2
	}
	if x > 0 && y > 0 && m.At(x-1, y-1) {
		i |= 1
	}
	return i
}

// Trace walks the marching squares contour of the region containing the
// opaque seed pixel (x, y) and returns its bounding rectangle.
//
// Corners are recorded only where both components of the step direction
// change, and the returned Rect bounds those corners. If the walk reaches a
// fully interior cell the configuration is ambiguous and the whole-image
// rectangle Rect{0, 0, W, H} is returned instead.
//
// The walk ends when it steps outside the mask or lands back on the seed.
// A walk that does neither within the step limit yields ErrTraceDiverged.
func Trace(m *Mask, x, y int, opts ...Option) (Rect, error) {
	o := buildOptions(opts)
	w, h := m.Dimensions()
	limit := o.stepLimit(w, h)

	startX, startY := x, y
	box := cornerBox{x: x, y: y}

	var pdx, pdy int
	recorded := false

	for steps := 0; ; steps++ {
		if steps >= limit {
			return Rect{}, fmt.Errorf("%w: seed (%d,%d) after %d steps", ErrTraceDiverged, startX, startY, steps)
		}

		var dx, dy int
		switch i := cellIndex(m, x, y); i {
		case 6:
			// Diagonal pinch: the last recorded vertical step picks the side.
			dx, dy = 1, 0
			if recorded && pdy == -1 {
				dx = -1
			}
		case 9:
			dx, dy = 0, 1
			if recorded && pdx == 1 {
				dy = -1
			}
		default:
			dx, dy = lookupDX[i], lookupDY[i]
			if dx == ambiguous || dy == ambiguous {
				return Rect{X: 0, Y: 0, W: w, H: h}, nil
			}
		}

		if !recorded || (dx != pdx && dy != pdy) {
			box.extend(x, y)
			pdx, pdy = dx, dy
			recorded = true
		}

		x += dx
		y += dy

		if x < 0 || x >= w || y < 0 || y >= h {
			break
		}
		if x == startX && y == startY {
			break
		}
	}

	return box.pixelRect(), nil
}
