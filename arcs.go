package pathopt

import "math"

// arcRun accumulates the state of a run of cubics being tested against a
// single fitted circle, in absolute coordinates so that each additional
// cubic's own (different) local frame never has to be reconciled by hand.
type arcRun struct {
	startAbs Point
	endAbs   Point
	center   Point
	radius   float64
	angle    float64 // accumulated subtended angle, always >= 0
	sweep    bool    // true for a positive (clockwise, in SVG's y-down frame) sweep
	consumed int
	sdata    []float64 // retained only while consumed == 1 and the source item was a plain C
}

const fullCircleSlop = 1e-3

// tryDetectArc attempts to replace items[i] and as many of its neighbors as
// fit the same circle with one or two ArcTo commands (spec.md §4.4.a). It
// returns the replacement items and how many source items (counted forward
// from i) they consume; ok is false when no arc is accepted and items[i]
// should be processed by the rest of the pipeline as usual.
//
// The search extends in both directions from the circle established by
// items[i]: forward through any run of C/S items that continue to fit it,
// which is the shape spec.md's own worked example takes (two cubics
// approximating a semicircle collapse to one A); and backward, absorbing the
// immediately preceding output item when it is itself an arc retaining the
// cubic-form sdata it was derived from and that cubic also fits the same
// circle. Backward absorption only reaches one step, into an already-emitted
// arc: chaining further back, into a plain cubic that was never itself
// detected as an arc, would require retracting more of st.out than a single
// pop and re-deriving state the forward search from that cubic's own turn
// already covers (documented in DESIGN.md).
func tryDetectArc(st *filterState, i int) ([]Item, int, bool) {
	ctx := st.ctx
	items := st.items
	arcCfg := ctx.cfg.MakeArcs
	if arcCfg == nil {
		return nil, 0, false
	}
	it := items[i]
	if it.Kind != CubeTo && it.Kind != SmoothCubeTo {
		return nil, 0, false
	}

	var prev *Item
	if i > 0 {
		prev = &items[i-1]
	}
	c1, c2, end, ok := cubicControlsRelative(it, prev)
	if !ok || !isConvexQuad(Point{}, c1, c2, end) {
		return nil, 0, false
	}
	centerLocal, radius, ok := fitCircle(c1, c2, end, arcCfg.Threshold, arcCfg.Tolerance, ctx.eps)
	if !ok {
		return nil, 0, false
	}

	run := arcRun{
		startAbs: it.Base,
		endAbs:   it.Coords,
		center:   it.Base.Add(centerLocal),
		radius:   radius,
		angle:    math.Abs(Point{}.Sub(centerLocal).AngleBetween(end.Sub(centerLocal))),
		sweep:    c1.PerpDot(end) > 0.0,
		consumed: 1,
	}
	if it.Kind == CubeTo {
		run.sdata = append([]float64(nil), it.Args...)
	}

	absorbedPrev, prevCost := tryAbsorbPrecedingArc(st, &run)

	// Forward extension: keep consuming subsequent C/S items while they
	// continue to fit the established circle.
	for i+run.consumed < len(items) {
		next := items[i+run.consumed]
		if next.Kind != CubeTo && next.Kind != SmoothCubeTo {
			break
		}
		nextPrev := &items[i+run.consumed-1]
		nc1, nc2, nend, ok := cubicControlsRelative(next, nextPrev)
		if !ok || !isConvexQuad(Point{}, nc1, nc2, nend) {
			break
		}
		localCenter := run.center.Sub(next.Base)
		if !cubicFitsCircle(nc1, nc2, nend, localCenter, run.radius, arcCfg.Threshold, arcCfg.Tolerance, ctx.eps, fullSamples) {
			break
		}
		segAngle := math.Abs(Point{}.Sub(localCenter).AngleBetween(nend.Sub(localCenter)))
		newAngle := run.angle + segAngle
		if newAngle > 2*math.Pi+fullCircleSlop {
			break
		}
		run.angle = newAngle
		run.endAbs = next.Coords
		run.consumed++
		run.sdata = nil
		if next.Kind == CubeTo && run.consumed == 1 {
			run.sdata = append([]float64(nil), next.Args...)
		}
		if newAngle > 2*math.Pi-fullCircleSlop {
			break // a full circle cannot be extended further
		}
	}

	arcItems := buildArcItems(run)
	if run.consumed == 1 && len(run.sdata) == 6 && !absorbedPrev {
		arcItems[0].SData = run.sdata
	}

	oldLen := prevCost
	for k := 0; k < run.consumed; k++ {
		oldLen += commandLen(items[i+k].Kind, items[i+k].Args, ctx)
	}
	newLen := 0
	for _, a := range arcItems {
		newLen += commandLen(ArcTo, a.Args, ctx)
	}

	suffixIdx := i + run.consumed
	needsSuffixFix := suffixIdx < len(items) && items[suffixIdx].Kind == SmoothCubeTo
	if needsSuffixFix {
		expanded, ok := expandSmoothCube(items[suffixIdx], &items[suffixIdx-1])
		if ok {
			origLen := commandLen(SmoothCubeTo, items[suffixIdx].Args, ctx)
			expLen := commandLen(CubeTo, expanded.Args, ctx)
			if expLen > origLen {
				newLen += expLen - origLen
			}
		}
	}

	if newLen >= oldLen {
		return nil, 0, false
	}

	if absorbedPrev {
		st.out = st.out[:len(st.out)-1]
	}

	if needsSuffixFix {
		if expanded, ok := expandSmoothCube(items[suffixIdx], &items[suffixIdx-1]); ok {
			items[suffixIdx] = expanded
		}
	}

	return arcItems, run.consumed, true
}

// tryAbsorbPrecedingArc implements the backward half of spec.md §4.4.a's
// extension: if the last item already committed to st.out is an arc that
// retained the cubic it was derived from (SData), and that cubic also fits
// run's circle, it is folded into run — its angle added, its absolute start
// adopted as run's own — so the two former arcs serialize as one. Returns
// whether an absorption happened and, if so, the serialized cost of the
// absorbed item, which the caller must add to its own before-cost for the
// length comparison to be fair.
func tryAbsorbPrecedingArc(st *filterState, run *arcRun) (bool, int) {
	n := len(st.out)
	if n == 0 {
		return false, 0
	}
	prevOut := st.out[n-1]
	if prevOut.Kind != ArcTo || len(prevOut.SData) != 6 {
		return false, 0
	}
	arcCfg := st.ctx.cfg.MakeArcs

	pc1 := Point{prevOut.SData[0], prevOut.SData[1]}
	pc2 := Point{prevOut.SData[2], prevOut.SData[3]}
	pend := Point{prevOut.SData[4], prevOut.SData[5]}
	if !isConvexQuad(Point{}, pc1, pc2, pend) {
		return false, 0
	}
	localCenter := run.center.Sub(prevOut.Base)
	if !cubicFitsCircle(pc1, pc2, pend, localCenter, run.radius, arcCfg.Threshold, arcCfg.Tolerance, st.ctx.eps, fullSamples) {
		return false, 0
	}
	if (pc1.PerpDot(pend) > 0.0) != run.sweep {
		return false, 0
	}

	segAngle := math.Abs(Point{}.Sub(localCenter).AngleBetween(pend.Sub(localCenter)))
	newAngle := run.angle + segAngle
	if newAngle > 2*math.Pi+fullCircleSlop {
		return false, 0
	}
	run.angle = newAngle
	run.startAbs = prevOut.Base
	run.sdata = nil
	return true, commandLen(ArcTo, prevOut.Args, st.ctx)
}

// buildArcItems renders an accepted run as one ArcTo, or as two half-circle
// ArcTo commands when the run closes a full circle (spec.md §4.4.a): a
// single arc command cannot express a 360 degree sweep since its start and
// end coincide, so the run is split at its antipodal point.
func buildArcItems(run arcRun) []Item {
	large := run.angle > math.Pi+1e-9

	if run.angle > 2*math.Pi-fullCircleSlop {
		mid := run.center.Mul(2).Sub(run.startAbs)
		first := newArcItem(run.startAbs, mid, run.radius, false, run.sweep)
		second := newArcItem(mid, run.endAbs, run.radius, false, run.sweep)
		return []Item{first, second}
	}

	return []Item{newArcItem(run.startAbs, run.endAbs, run.radius, large, run.sweep)}
}

func newArcItem(fromAbs, toAbs Point, radius float64, large, sweep bool) Item {
	d := toAbs.Sub(fromAbs)
	largeF, sweepF := 0.0, 0.0
	if large {
		largeF = 1.0
	}
	if sweep {
		sweepF = 1.0
	}
	it := Item{
		Kind: ArcTo,
		Abs:  false,
		Args: []float64{radius, radius, 0.0, largeF, sweepF, d.X, d.Y},
		Base: fromAbs,
	}
	it.Coords = toAbs
	return it
}

// expandSmoothCube rewrites a SmoothCubeTo into an equivalent plain CubeTo,
// baking in the implicit first control point it would otherwise have
// reflected from prev. Needed whenever prev is about to stop being a cubic
// (spec.md §4.4.a, §4.4.d, §4.4.e) and so can no longer supply that
// reflection implicitly.
func expandSmoothCube(it Item, prev *Item) (Item, bool) {
	if it.Kind != SmoothCubeTo {
		return it, false
	}
	c1, c2, end, ok := cubicControlsRelative(it, prev)
	if !ok {
		return it, false
	}
	out := it
	out.Kind = CubeTo
	out.Args = []float64{c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y}
	return out, true
}

// smartRoundArcRadius implements spec.md §4.4.c: starting from the full
// configured precision, it keeps trying one fewer decimal place as long as
// the sagitta implied by the coarser radius still matches the original
// radius's sagitta within eps, and returns the coarsest value that passes.
// Radii whose sagitta is undefined (the chord exceeds the diameter) just get
// plain rounding at the full precision.
func smartRoundArcRadius(r, chord float64, p int, eps float64) float64 {
	orig, ok := sagitta(r, chord)
	if !ok {
		return roundTo(r, p)
	}
	best := roundTo(r, p)
	for q := p - 1; q >= 0; q-- {
		candidate := roundTo(r, q)
		s, ok := sagitta(candidate, chord)
		if !ok || math.Abs(s-orig) >= eps {
			break
		}
		best = candidate
	}
	return best
}

// expandSmoothQuad is expandSmoothCube's quadratic counterpart (spec.md
// §4.4.d, §4.4.e): rewrites a SmoothQuadTo into a plain QuadTo, baking in the
// implicit control point tracked by prevQControl.
func expandSmoothQuad(it Item, prevQControl *Point) (Item, bool) {
	if it.Kind != SmoothQuadTo || prevQControl == nil {
		return it, false
	}
	c := prevQControl.Reflect(it.Base).Sub(it.Base)
	out := it
	out.Kind = QuadTo
	out.Args = []float64{c.X, c.Y, it.Args[0], it.Args[1]}
	return out, true
}
