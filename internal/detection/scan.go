package detection

// FindRegions raster-scans m and returns the bounding rectangle of every
// opaque region, in the order their seed pixels are encountered.
//
// The scan starts at (1, 1) so the tracer's up and left neighbours always
// exist. After each column step the cursor is pushed past any rectangle
// already found that covers it (see skipCovered), so a region is traced once.
//
// Rectangles may overlap. The only error is ErrTraceDiverged from a trace
// that exceeded its step limit; no rectangles are returned in that case.
func FindRegions(m *Mask, opts ...Option) ([]Rect, error) {
	w, h := m.Dimensions()
	regions := make([]Rect, 0)

	x, y := 1, 1
	for y < h {
		for x < w {
			if m.At(x, y) {
				r, err := Trace(m, x, y, opts...)
				if err != nil {
					return nil, err
				}
				regions = append(regions, r)
			}
			x++
			x, y = skipCovered(regions, x, y)
		}
		x = 1
		y++
		x, y = skipCovered(regions, x, y)
	}

	return regions, nil
}

// skipCovered moves the cursor past every rectangle that contains it.
//
// All rectangles are checked in discovery order with no early exit, each
// against the cursor as updated by the ones before it. When several match,
// the last one in the sequence decides where the cursor ends up.
func skipCovered(regions []Rect, x, y int) (int, int) {
	for _, r := range regions {
		if r.Contains(x, y) {
			x, y = r.SkipPast(y)
		}
	}
	return x, y
}
