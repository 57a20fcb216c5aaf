package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/alpha-regions/internal/detection"
)

// ExtractedRegion describes one region written by ExtractRegions.
type ExtractedRegion struct {
	Index  int            `json:"index"`
	Region detection.Rect `json:"region"`
	Path   string         `json:"path"`
	Width  int            `json:"width"`
	Height int            `json:"height"`
}

// CropRegion cuts the pixels covered by r out of img. Both edges of r are
// inclusive, so the crop is (W+1)x(H+1) before clipping to the image.
// A scale other than 1 resizes the crop with a Lanczos filter.
func CropRegion(img image.Image, r detection.Rect, scale float64) (*image.NRGBA, error) {
	bounds := img.Bounds()
	area := r.Bounds().Add(bounds.Min).Intersect(bounds)
	if area.Empty() {
		return nil, fmt.Errorf("region %s outside image bounds %dx%d", r, bounds.Dx(), bounds.Dy())
	}
	if scale <= 0 {
		return nil, fmt.Errorf("scale must be > 0, got %g", scale)
	}

	cropped := imaging.Crop(img, area)

	if scale != 1.0 {
		newWidth := max(int(float64(cropped.Bounds().Dx())*scale), 1)
		newHeight := max(int(float64(cropped.Bounds().Dy())*scale), 1)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	return cropped, nil
}

// ExtractRegions writes every region of img into dir as
// <prefix>_<index>.png, creating dir if needed. Indexes follow the order of
// rects.
func ExtractRegions(img image.Image, rects []detection.Rect, dir, prefix string, scale float64) ([]ExtractedRegion, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	out := make([]ExtractedRegion, 0, len(rects))
	for i, r := range rects {
		cropped, err := CropRegion(img, r, scale)
		if err != nil {
			return out, fmt.Errorf("region %d: %w", i, err)
		}

		path := filepath.Join(dir, fmt.Sprintf("%s_%03d.png", prefix, i))
		if err := SaveImage(path, cropped); err != nil {
			return out, fmt.Errorf("region %d: %w", i, err)
		}

		out = append(out, ExtractedRegion{
			Index:  i,
			Region: r,
			Path:   path,
			Width:  cropped.Bounds().Dx(),
			Height: cropped.Bounds().Dy(),
		})
	}

	return out, nil
}
