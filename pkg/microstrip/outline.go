package microstrip

// Point is a 2D coordinate. The board builder and the simulation model both
// work in the KiCad convention: X grows to the right, Y grows downward.
type Point struct {
	X float64
	Y float64
}

// OutlineSpec carries the lengths (in mm) that define the patch-with-inset
// polygon. Keeping the polygon assembly in one place avoids the drift that
// happens when each consumer re-derives the vertex order.
type OutlineSpec struct {
	PatchWidthMM  float64
	PatchLengthMM float64
	FeedWidthMM   float64
	InsetDepthMM  float64
	GapMM         float64
}

// InsetOutline returns the closed 9-point outline of a rectangular patch with
// a centered inset notch on its +Y edge (where the feed line enters). The
// path starts at the top-left corner, runs counter-clockwise in screen
// coordinates through the notch, and repeats the first point as the last.
//
// origin is the patch center in the caller's coordinate system, already in
// target units; every patch-relative offset is multiplied by scale before the
// origin is added.
func InsetOutline(spec OutlineSpec, origin Point, scale float64) []Point {
	halfW := spec.PatchWidthMM / 2.0
	halfL := spec.PatchLengthMM / 2.0
	halfNotch := spec.FeedWidthMM/2.0 + spec.GapMM
	notchTop := halfL - spec.InsetDepthMM

	at := func(x, y float64) Point {
		return Point{X: origin.X + x*scale, Y: origin.Y + y*scale}
	}

	return []Point{
		at(-halfW, -halfL),     // top-left corner
		at(-halfW, halfL),      // down the left edge
		at(-halfNotch, halfL),  // along the feed edge to the notch
		at(-halfNotch, notchTop), // up the left notch wall
		at(halfNotch, notchTop),  // across the notch bottom
		at(halfNotch, halfL),   // down the right notch wall
		at(halfW, halfL),       // along the feed edge to the corner
		at(halfW, -halfL),      // up the right edge
		at(-halfW, -halfL),     // close the path
	}
}

// PolygonArea returns the absolute enclosed area of a closed polygon via the
// shoelace formula. The closing point may be present or omitted.
func PolygonArea(pts []Point) float64 {
	n := len(pts)
	if n > 1 && pts[0] == pts[n-1] {
		n--
	}
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2.0
}
