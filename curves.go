package pathopt

import "math"

// cubicControlsRelative returns the control points and endpoint of a CubeTo
// or SmoothCubeTo item, expressed relative to the item's own Base, as if it
// were a plain C. For a SmoothCubeTo, the implicit first control point is
// synthesized by mirroring prev's last control point through prev's endpoint
// (spec.md §4.4.a); ok is false when prev does not supply one (prev is nil or
// is not itself a cubic).
func cubicControlsRelative(it Item, prev *Item) (c1, c2, end Point, ok bool) {
	switch it.Kind {
	case CubeTo:
		return Point{it.Args[0], it.Args[1]}, Point{it.Args[2], it.Args[3]}, Point{it.Args[4], it.Args[5]}, true
	case SmoothCubeTo:
		if prev == nil {
			return Point{}, Point{}, Point{}, false
		}
		var prevC2Abs Point
		switch prev.Kind {
		case CubeTo:
			prevC2Abs = prev.Base.Add(Point{prev.Args[2], prev.Args[3]})
		case SmoothCubeTo:
			prevC2Abs = prev.Base.Add(Point{prev.Args[0], prev.Args[1]})
		default:
			return Point{}, Point{}, Point{}, false
		}
		c1Abs := prevC2Abs.Reflect(prev.Coords)
		c1 = c1Abs.Sub(it.Base)
		c2 = Point{it.Args[0], it.Args[1]}
		end = Point{it.Args[2], it.Args[3]}
		return c1, c2, end, true
	}
	return Point{}, Point{}, Point{}, false
}

// tryCubicToLine rewrites a cubic whose control points sit on the chord from
// its start to its end into a plain line (spec.md §4.4.d). Only a bare C is
// tested here; an S is never straight on its own terms since its first
// control point is implicit.
func tryCubicToLine(it Item, eps float64) (Item, bool) {
	if it.Kind != CubeTo {
		return it, false
	}
	c1 := Point{it.Args[0], it.Args[1]}
	c2 := Point{it.Args[2], it.Args[3]}
	end := Point{it.Args[4], it.Args[5]}
	if !isStraightCubic(c1, c2, end, eps) {
		return it, false
	}
	line := it
	line.Kind = LineTo
	line.Args = []float64{end.X, end.Y}
	return line, true
}

// tryQuadToLine is tryCubicToLine's quadratic counterpart: a Q whose single
// control point sits on the start-end chord degenerates to a line.
func tryQuadToLine(it Item, eps float64) (Item, bool) {
	if it.Kind != QuadTo {
		return it, false
	}
	c := Point{it.Args[0], it.Args[1]}
	end := Point{it.Args[2], it.Args[3]}
	if end.IsZero() {
		return it, false
	}
	if pointLineDistance(c, Point{}, end) >= eps {
		return it, false
	}
	line := it
	line.Kind = LineTo
	line.Args = []float64{end.X, end.Y}
	return line, true
}

// tryBareSmoothQuadToLine handles the one case spec.md §4.4.d calls out for
// T directly: a T with no preceding Q or T has no implicit control point to
// reflect, so SVG falls back to the cursor itself as the control point,
// which makes the whole curve degenerate to the line its own (dx,dy) args
// already describe. No tolerance test is needed; this holds exactly.
func tryBareSmoothQuadToLine(it Item, prevQControl *Point) (Item, bool) {
	if it.Kind != SmoothQuadTo || prevQControl != nil {
		return it, false
	}
	line := it
	line.Kind = LineTo
	return line, true
}

// tryArcToLine collapses a degenerate or visually flat arc into a line
// (spec.md §4.4.d): rx or ry is zero, or (for a non-large arc with rx
// approximately equal to ry) the sagitta of the implied circular segment is
// below eps.
func tryArcToLine(it Item, eps float64) (Item, bool) {
	if it.Kind != ArcTo {
		return it, false
	}
	rx, ry := it.Args[0], it.Args[1]
	large := it.Args[3] != 0.0
	x, y := it.Args[5], it.Args[6]

	flat := rx == 0.0 || ry == 0.0
	if !flat && !large && math.Abs(rx-ry) < eps {
		chord := math.Hypot(x, y)
		if s, ok := sagitta(rx, chord); ok && s < eps {
			flat = true
		}
	}
	if !flat {
		return it, false
	}
	line := it
	line.Kind = LineTo
	line.Args = []float64{x, y}
	return line, true
}

// tryCubicToQuadratic infers whether a cubic is exactly representable (within
// 2eps) as a quadratic, using the identity that a cubic degree-elevated from
// a quadratic control Q satisfies Q = (3*C1-P0)/2 = (3*C2-P1)/2 (spec.md
// §4.4.e). It accepts the rewrite only when the inferred Q also serializes
// shorter than the original C.
func tryCubicToQuadratic(it Item, ctx *context) (Item, bool) {
	if it.Kind != CubeTo {
		return it, false
	}
	c1 := Point{it.Args[0], it.Args[1]}
	c2 := Point{it.Args[2], it.Args[3]}
	end := Point{it.Args[4], it.Args[5]}

	q1 := c1.Mul(1.5)
	q2 := c2.Mul(3).Sub(end).Div(2)
	if q1.Sub(q2).Length() >= 2*ctx.eps {
		return it, false
	}
	q := q1.Interpolate(q2, 0.5)

	quad := it
	quad.Kind = QuadTo
	quad.Args = []float64{q.X, q.Y, end.X, end.Y}
	if commandLen(QuadTo, quad.Args, ctx) >= commandLen(CubeTo, it.Args, ctx) {
		return it, false
	}
	return quad, true
}

// trySmoothShorthand collapses a C into an S, or a Q into a T, whenever its
// leading control point already equals the implicit reflection a shorthand
// would produce (spec.md §4.4.h). For cubics the implicit control point is
// always derivable from prev directly, since C and S both carry their own
// second control point explicitly. For quadratics it is not: a T carries no
// control point of its own, so the chain is tracked externally by
// prevQControl (see updateQControl), threaded in from filterState.
func trySmoothShorthand(it Item, prev *Item, prevQControl *Point, eps float64) Item {
	switch it.Kind {
	case CubeTo:
		c1Abs := it.Base.Add(Point{it.Args[0], it.Args[1]})
		var implicitAbs Point
		switch {
		case prev != nil && prev.Kind == CubeTo:
			prevC2Abs := prev.Base.Add(Point{prev.Args[2], prev.Args[3]})
			implicitAbs = prevC2Abs.Reflect(prev.Coords)
		case prev != nil && prev.Kind == SmoothCubeTo:
			prevC2Abs := prev.Base.Add(Point{prev.Args[0], prev.Args[1]})
			implicitAbs = prevC2Abs.Reflect(prev.Coords)
		default:
			implicitAbs = it.Base
		}
		if !c1Abs.Equals(implicitAbs, eps) {
			return it
		}
		s := it
		s.Kind = SmoothCubeTo
		s.Args = []float64{it.Args[2], it.Args[3], it.Args[4], it.Args[5]}
		return s

	case QuadTo:
		if prevQControl == nil {
			return it
		}
		cAbs := it.Base.Add(Point{it.Args[0], it.Args[1]})
		implicitAbs := prevQControl.Reflect(it.Base)
		if !cAbs.Equals(implicitAbs, eps) {
			return it
		}
		t := it
		t.Kind = SmoothQuadTo
		t.Args = []float64{it.Args[2], it.Args[3]}
		return t
	}
	return it
}

// updateQControl recomputes the quadratic control-point chain state carried
// forward to the next item (spec.md §4.4.k): a Q's explicit control point, or
// the reflection of the chain's previous control point through a T's own
// start, becomes the next item's candidate implicit control. Any other kind
// breaks the chain.
func updateQControl(it Item, prev *Point) *Point {
	switch it.Kind {
	case QuadTo:
		c := it.Base.Add(Point{it.Args[0], it.Args[1]})
		return &c
	case SmoothQuadTo:
		if prev == nil {
			return nil
		}
		r := prev.Reflect(it.Base)
		return &r
	}
	return nil
}
