// Package imaging handles image I/O around region detection.
//
// It decodes image files into alpha masks for the detection package and
// renders detected regions back into an overlay image for visual inspection.
// ExtractRegions cuts each region out into its own file, the usual way to
// slice a sprite sheet. Nothing in this package knows how regions are found.
//
// # Supported Formats
//
// Decoding goes through github.com/disintegration/imaging, with decoders
// registered for PNG, JPEG, GIF (standard library) and BMP, TIFF, WebP
// (golang.org/x/image). Overlays are encoded with
// github.com/anthonynsimon/bild/imgio as PNG, JPEG or BMP, picked by the
// output file extension. Only PNG keeps the overlay alpha.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with (0,0) at the
// top-left corner. Overlay rectangles use the detection.Rect convention:
// both edges inclusive.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. RenderOverlay and the
// encoding helpers are stateless.
//
// # Error Handling
//
// Functions return wrapped errors for missing files, undecodable data,
// unsupported output formats and failed writes. Reporting them to the
// operator is left to the caller.
package imaging
