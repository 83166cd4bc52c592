package pathopt

import "math"

// lineIntersect returns the intersection of line AB with line CD, extended to
// infinity in both directions. It returns false if the lines are parallel
// (determinant is zero) or the result is not finite.
func lineIntersect(a, b, c, d Point) (Point, bool) {
	denom := (a.X-b.X)*(c.Y-d.Y) - (a.Y-b.Y)*(c.X-d.X)
	if denom == 0.0 {
		return Point{}, false
	}
	t := ((a.X-c.X)*(c.Y-d.Y) - (a.Y-c.Y)*(c.X-d.X)) / denom
	p := Point{a.X + t*(b.X-a.X), a.Y + t*(b.Y-a.Y)}
	if !isFinitePoint(p) {
		return Point{}, false
	}
	return p, true
}

// segmentIntersect is like lineIntersect but also reports whether the
// intersection point falls strictly within both segments AB and CD. Used by
// the convex-quadrilateral test for arc detection.
func segmentIntersect(a, b, c, d Point) (Point, bool) {
	denom := (a.X-b.X)*(c.Y-d.Y) - (a.Y-b.Y)*(c.X-d.X)
	if denom == 0.0 {
		return Point{}, false
	}
	t := ((a.X-c.X)*(c.Y-d.Y) - (a.Y-c.Y)*(c.X-d.X)) / denom
	u := ((a.X-c.X)*(a.Y-b.Y) - (a.Y-c.Y)*(a.X-b.X)) / denom
	if t <= 0.0 || 1.0 <= t || u <= 0.0 || 1.0 <= u {
		return Point{}, false
	}
	p := Point{a.X + t*(b.X-a.X), a.Y + t*(b.Y-a.Y)}
	if !isFinitePoint(p) {
		return Point{}, false
	}
	return p, true
}

func isFinitePoint(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// cubicBezierAt evaluates the cubic Bézier with control points p0, c1, c2, p1
// at parameter t using the standard Bernstein form.
func cubicBezierAt(p0, c1, c2, p1 Point, t float64) Point {
	mt := 1.0 - t
	a := mt * mt * mt
	b := 3.0 * mt * mt * t
	c := 3.0 * mt * t * t
	d := t * t * t
	return Point{
		a*p0.X + b*c1.X + c*c2.X + d*p1.X,
		a*p0.Y + b*c1.Y + c*c2.Y + d*p1.Y,
	}
}

// isConvexQuad reports whether the four points, taken in order as a
// quadrilateral, are convex — that is, its two diagonals (p0-p2 and p1-p3)
// intersect strictly inside it. This is a necessary condition for a cubic to
// be well approximated by a circular arc.
func isConvexQuad(p0, p1, p2, p3 Point) bool {
	_, ok := segmentIntersect(p0, p2, p1, p3)
	return ok
}

// isStraightCubic reports whether a cubic from the origin to end, with
// control points c1 and c2, is a straight line: the perpendicular distance
// from each control point to the line through the origin and end is below
// eps. Degenerate cubics whose endpoint coincides with the origin are never
// considered straight.
func isStraightCubic(c1, c2, end Point, eps float64) bool {
	if end.IsZero() {
		return false
	}
	return pointLineDistance(c1, Point{}, end) < eps && pointLineDistance(c2, Point{}, end) < eps
}

// pointLineDistance returns the perpendicular distance from p to the
// (infinite) line through a and b.
func pointLineDistance(p, a, b Point) float64 {
	d := b.Sub(a)
	length := d.Length()
	if length == 0.0 {
		return p.Sub(a).Length()
	}
	return math.Abs(d.PerpDot(p.Sub(a))) / length
}

// sagitta returns the sagitta of a circular arc of radius r subtending a
// chord of the given length, i.e. the perpendicular distance from the
// midpoint of the chord to the arc. It is defined only for chord <= 2r.
func sagitta(r, chord float64) (float64, bool) {
	if chord > 2.0*r {
		return 0.0, false
	}
	return r - math.Sqrt(r*r-chord*chord/4.0), true
}

// fitCircle attempts to fit a circle through the cubic from the origin to
// end with control points c1, c2. It samples the curve at t=1/2 and
// intersects the perpendicular bisectors of origin-mid and mid-end to find a
// candidate center, then verifies the fit by sampling at t=1/4 and t=3/4: each
// sampled point must lie within the given tolerance of the candidate radius.
// Radii at or beyond 1e15 are rejected as numerically meaningless.
func fitCircle(c1, c2, end Point, arcThreshold, arcTolerance, eps float64) (Point, float64, bool) {
	origin := Point{}
	mid := cubicBezierAt(origin, c1, c2, end, 0.5)

	m1 := origin.Interpolate(mid, 0.5)
	d1 := mid.Sub(origin)
	b1 := Point{-d1.Y, d1.X}

	m2 := mid.Interpolate(end, 0.5)
	d2 := end.Sub(mid)
	b2 := Point{-d2.Y, d2.X}

	center, ok := lineIntersect(m1, m1.Add(b1), m2, m2.Add(b2))
	if !ok {
		return Point{}, 0.0, false
	}
	radius := center.Sub(origin).Length()
	if radius >= 1e15 {
		return Point{}, 0.0, false
	}
	if !cubicFitsCircle(c1, c2, end, center, radius, arcThreshold, arcTolerance, eps, quarterSamples) {
		return Point{}, 0.0, false
	}
	return center, radius, true
}

var quarterSamples = []float64{0.25, 0.75}
var fullSamples = []float64{0.0, 0.25, 0.5, 0.75, 1.0}

// cubicFitsCircle verifies that the cubic from the origin to end (with
// control points c1, c2) stays within tolerance of the given circle at each
// sample parameter. Used both to accept a freshly fit circle (checked at 1/4
// and 3/4) and to test whether a subsequent cubic continues to fit an
// already-established circle (checked at all five standard samples).
func cubicFitsCircle(c1, c2, end, center Point, radius, arcThreshold, arcTolerance, eps float64, samples []float64) bool {
	tol := math.Min(arcThreshold*eps, arcTolerance*radius/100.0)
	for _, t := range samples {
		p := cubicBezierAt(Point{}, c1, c2, end, t)
		if math.Abs(p.Sub(center).Length()-radius) > tol {
			return false
		}
	}
	return true
}
