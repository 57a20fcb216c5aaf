package detection

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Mask is an immutable boolean grid built from an image's alpha channel.
//
// A pixel is opaque (true) when its 8-bit non-premultiplied alpha is greater
// than zero. The grid is stored row-major and never changes after construction.
type Mask struct {
	width  int
	height int
	bits   []bool
}

// NewMask thresholds the alpha channel of img.
//
// The image is first normalised to a zero-origin NRGBA copy, so sub-images and
// images with a non-zero Bounds().Min are handled the same as any other image:
// mask coordinate (0, 0) always refers to the top-left pixel of img.
func NewMask(img image.Image) *Mask {
	src := imaging.Clone(img)
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()

	bits := make([]bool, w*h)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			bits[y*w+x] = row[x*4+3] > 0
		}
	}

	return &Mask{width: w, height: h, bits: bits}
}

// NewMaskFromBits builds a mask from an explicit row-major grid.
// The slice is copied.
func NewMaskFromBits(width, height int, bits []bool) (*Mask, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid mask dimensions %dx%d", width, height)
	}
	if len(bits) != width*height {
		return nil, fmt.Errorf("mask grid has %d cells, want %d for %dx%d", len(bits), width*height, width, height)
	}

	cp := make([]bool, len(bits))
	copy(cp, bits)
	return &Mask{width: width, height: height, bits: cp}, nil
}

// At reports whether pixel (x, y) is opaque.
//
// Querying outside [0,W)×[0,H) is a programming error and panics; callers are
// expected to bounds-check first.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		panic(fmt.Sprintf("detection: mask access (%d,%d) outside %dx%d", x, y, m.width, m.height))
	}
	return m.bits[y*m.width+x]
}

// Dimensions returns the mask width and height in pixels.
func (m *Mask) Dimensions() (int, int) {
	return m.width, m.height
}

// Count returns the number of opaque pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}
