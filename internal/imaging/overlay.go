package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/alpha-regions/internal/detection"
)

// DefaultOverlayAlpha is the alpha written to every pixel covered by a region.
const DefaultOverlayAlpha uint8 = 205

// OverlayOptions controls how RenderOverlay paints regions.
type OverlayOptions struct {
	// Alpha is written to every covered pixel. Zero selects DefaultOverlayAlpha.
	Alpha uint8

	// Tint, when non-nil, replaces the RGB channels of covered pixels.
	// When nil the colour channels are left untouched.
	Tint *color.NRGBA
}

// RenderOverlay paints detected regions onto a new transparent image.
//
// The result is a width×height NRGBA image where every pixel contained in any
// of the rectangles (inclusive on both edges) has its alpha set to the
// overlay alpha. Pixels outside all rectangles stay fully transparent. Parts
// of a rectangle outside the image are clipped.
func RenderOverlay(width, height int, rects []detection.Rect, opts OverlayOptions) *image.NRGBA {
	alpha := opts.Alpha
	if alpha == 0 {
		alpha = DefaultOverlayAlpha
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for _, r := range rects {
		area := r.Bounds().Intersect(img.Bounds())
		for y := area.Min.Y; y < area.Max.Y; y++ {
			for x := area.Min.X; x < area.Max.X; x++ {
				i := img.PixOffset(x, y)
				if opts.Tint != nil {
					img.Pix[i+0] = opts.Tint.R
					img.Pix[i+1] = opts.Tint.G
					img.Pix[i+2] = opts.Tint.B
				}
				img.Pix[i+3] = alpha
			}
		}
	}

	return img
}

// ParseTint parses a hex colour such as "#ff0000", "ff0000" or "#f00".
// An empty string returns nil, meaning no tint.
func ParseTint(hex string) (*color.NRGBA, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return nil, nil
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid tint color %q: %w", hex, err)
	}

	r, g, b := c.RGB255()
	return &color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// SaveImage encodes img to path, choosing the encoder from the extension.
// Supported extensions are .png, .jpg, .jpeg and .bmp.
func SaveImage(path string, img image.Image) error {
	var enc imgio.Encoder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		enc = imgio.PNGEncoder()
	case ".jpg", ".jpeg":
		enc = imgio.JPEGEncoder(95)
	case ".bmp":
		enc = imgio.BMPEncoder()
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}

	if err := imgio.Save(path, img, enc); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// EncodedImage is an image encoded as base64 PNG.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNGBase64 encodes img as PNG and wraps it for JSON transport.
func EncodePNGBase64(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
