// Package region implements the trigger-region containment test and the
// rising-edge detector that turns per-frame containment into events.
package region

// Point is a pixel coordinate.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle in pixel coordinates.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Center returns the centroid of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// corners returns the rectangle corners in clockwise order
// (image coordinates, y grows downward).
func (r Rect) corners() [4]Point {
	return [4]Point{
		{r.X, r.Y},
		{r.X + r.W, r.Y},
		{r.X + r.W, r.Y + r.H},
		{r.X, r.Y + r.H},
	}
}

// Contains reports whether p lies inside the rectangle, treated as a convex
// polygon over its four corners. The region is closed: boundary points count
// as inside.
func (r Rect) Contains(p Point) bool {
	c := r.corners()
	for i := range c {
		a := c[i]
		b := c[(i+1)%len(c)]
		// Cross product of edge a->b with a->p. For clockwise winding in
		// image coordinates, interior points keep this non-negative.
		cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
		if cross < 0 {
			return false
		}
	}
	return true
}

// EdgeDetector carries the single bit of previous containment state needed to
// classify transitions. The zero value treats the previous state as outside,
// so the very first observation can only fire if it is immediately inside.
type EdgeDetector struct {
	prev bool
}

// Observe records the containment state for the current frame and reports
// whether it is a rising edge (outside on the previous frame, inside now).
// Inside->outside transitions and sustained inside never fire.
func (d *EdgeDetector) Observe(inside bool) bool {
	rising := inside && !d.prev
	d.prev = inside
	return rising
}

// Inside returns the last observed containment state.
func (d *EdgeDetector) Inside() bool {
	return d.prev
}

// Reset returns the detector to its initial outside state.
func (d *EdgeDetector) Reset() {
	d.prev = false
}
