// Package detection finds the bounding rectangles of opaque regions in an
// alpha mask.
//
// The input is a Mask, a boolean grid built by thresholding an image's alpha
// channel at zero. FindRegions scans the mask row by row; on each opaque pixel
// not already covered by a known region it calls Trace, which follows the
// region boundary with a marching squares walk and returns a Rect.
//
// # Coordinate System
//
// Coordinates follow the usual image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Rect edges are inclusive on both ends: Rect{X, Y, W, H} covers columns
//     X..X+W and rows Y..Y+H
//
// # Algorithm
//
// Trace builds a 4-bit cell index from the current pixel and its left, upper
// and upper-left neighbours, and looks up a step direction. Two diagonal
// "pinch" configurations pick a direction from the previous turn. A fully
// interior cell is treated as ambiguous and yields the whole-image Rect.
// Corners are recorded only where both step components change, so the result
// is the bounding box of those corners rather than of every visited pixel.
//
// # Limitations
//
//   - Only axis-aligned bounding boxes are produced, never contours
//   - Returned rectangles are not guaranteed to be disjoint
//   - Regions touching the image border may be reported partially, since a
//     trace stops as soon as it leaves the image
//   - The first row and column are never used as seeds
//
// The package performs no I/O and never logs.
package detection
