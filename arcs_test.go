package pathopt

import (
	"math"
	"testing"

	"github.com/tdewolff/test"
)

// quarterCircleCubic returns the standard cubic approximation of a quarter
// circle of the given radius, starting at (r,0) relative to center (0,0) and
// ending at (0,r), expressed relative to its own start.
func quarterCircleCubic(r float64) Item {
	k := 0.5522847498
	return Item{
		Kind: CubeTo,
		Args: []float64{0, r * k, -r + r*k, r, -r, r},
		Base: Point{r, 0},
	}
}

func TestTryDetectArcSingleCubic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MakeArcs = &ArcConfig{Threshold: 10, Tolerance: 5}
	ctx := newContext(cfg, nil)

	it := quarterCircleCubic(10)
	it.Coords = it.Base.Add(Point{it.Args[4], it.Args[5]})
	items := []Item{it}

	st := &filterState{ctx: ctx, items: items}
	arcItems, consumed, ok := tryDetectArc(st, 0)
	test.That(t, ok)
	test.T(t, consumed, 1)
	test.T(t, len(arcItems), 1)
	test.T(t, arcItems[0].Kind, ArcTo)
	test.That(t, math.Abs(arcItems[0].Args[0]-10) < 0.2)
}

func TestTryDetectArcRejectsNonCubic(t *testing.T) {
	cfg := DefaultConfig()
	ctx := newContext(cfg, nil)
	items := []Item{{Kind: LineTo, Args: []float64{10, 0}}}
	st := &filterState{ctx: ctx, items: items}
	_, _, ok := tryDetectArc(st, 0)
	test.That(t, !ok)
}

func TestTryDetectArcDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MakeArcs = nil
	ctx := newContext(cfg, nil)
	it := quarterCircleCubic(10)
	it.Coords = it.Base.Add(Point{it.Args[4], it.Args[5]})
	st := &filterState{ctx: ctx, items: []Item{it}}
	_, _, ok := tryDetectArc(st, 0)
	test.That(t, !ok)
}

// TestTryDetectArcAbsorbsPrecedingArc exercises backward extension: the two
// quarter circles below approximate adjoining quadrants of the same circle
// (centered at the origin, radius r), so once the second is independently
// detected as an arc, it should absorb the first — already committed to
// st.out as a single-cubic arc retaining its SData — into one semicircle arc
// rather than leaving two quarter-circle arcs in the output.
func TestTryDetectArcAbsorbsPrecedingArc(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MakeArcs = &ArcConfig{Threshold: 10, Tolerance: 5}
	ctx := newContext(cfg, nil)

	r := 10.0
	k := 0.5522847498
	cubic1Args := []float64{0, r * k, -r + r*k, r, -r, r}
	cubic2Args := []float64{-r * k, 0, -r, -r + r*k, -r, -r}

	prevArc := newArcItem(Point{r, 0}, Point{0, r}, r, false, true)
	prevArc.SData = cubic1Args

	cubic2 := Item{Kind: CubeTo, Args: cubic2Args, Base: Point{0, r}, Coords: Point{-r, 0}}

	st := &filterState{ctx: ctx, items: []Item{cubic2}, out: []Item{prevArc}}
	arcItems, consumed, ok := tryDetectArc(st, 0)
	test.That(t, ok)
	test.T(t, consumed, 1)
	test.T(t, len(arcItems), 1)
	test.T(t, len(st.out), 0) // the absorbed predecessor was popped
	test.That(t, math.Abs(arcItems[0].Args[0]-r) < 0.5)
	test.T(t, arcItems[0].Args[5], -2*r) // dx spans both quarters exactly
	test.T(t, arcItems[0].Args[6], 0.0)
	test.T(t, len(arcItems[0].SData), 0) // spans two cubics, no single-item sdata
}

func TestBuildArcItemsFullCircle(t *testing.T) {
	run := arcRun{
		startAbs: Point{10, 0},
		endAbs:   Point{10, 0},
		center:   Point{0, 0},
		radius:   10,
		angle:    2 * math.Pi,
		sweep:    true,
	}
	items := buildArcItems(run)
	test.T(t, len(items), 2)
	test.T(t, items[0].Kind, ArcTo)
	test.T(t, items[1].Kind, ArcTo)
}

func TestBuildArcItemsPartial(t *testing.T) {
	run := arcRun{
		startAbs: Point{10, 0},
		endAbs:   Point{0, 10},
		center:   Point{0, 0},
		radius:   10,
		angle:    math.Pi / 2,
		sweep:    true,
	}
	items := buildArcItems(run)
	test.T(t, len(items), 1)
	test.T(t, items[0].Args[3], 0.0) // not a large arc
}

func TestNewArcItem(t *testing.T) {
	it := newArcItem(Point{0, 0}, Point{10, 10}, 5, true, false)
	test.T(t, it.Kind, ArcTo)
	test.T(t, it.Abs, false)
	test.T(t, it.Args, []float64{5, 5, 0, 1, 0, 10, 10})
	test.T(t, it.Coords, Point{10, 10})
}

func TestExpandSmoothCube(t *testing.T) {
	prev := Item{Kind: CubeTo, Args: []float64{2, 5, 8, 0, 10, 0}, Base: Point{0, 0}, Coords: Point{10, 0}}
	s := Item{Kind: SmoothCubeTo, Args: []float64{5, 5, 10, 10}, Base: Point{10, 0}, Coords: Point{20, 10}}
	out, ok := expandSmoothCube(s, &prev)
	test.That(t, ok)
	test.T(t, out.Kind, CubeTo)
	test.T(t, out.Args, []float64{2, 0, 5, 5, 10, 10})
}

func TestExpandSmoothCubeWrongKind(t *testing.T) {
	c := Item{Kind: CubeTo, Args: []float64{1, 2, 3, 4, 5, 6}}
	_, ok := expandSmoothCube(c, nil)
	test.That(t, !ok)
}

func TestExpandSmoothQuad(t *testing.T) {
	prevCtrl := Point{2, 0}
	it := Item{Kind: SmoothQuadTo, Args: []float64{10, 10}, Base: Point{10, 0}}
	out, ok := expandSmoothQuad(it, &prevCtrl)
	test.That(t, ok)
	test.T(t, out.Kind, QuadTo)
	test.T(t, out.Args, []float64{8, 0, 10, 10})
}

func TestExpandSmoothQuadNoControl(t *testing.T) {
	it := Item{Kind: SmoothQuadTo, Args: []float64{10, 10}}
	_, ok := expandSmoothQuad(it, nil)
	test.That(t, !ok)
}

func TestSmartRoundArcRadius(t *testing.T) {
	// a radius whose sagitta barely changes when coarsened should round
	// to the coarser value
	r := smartRoundArcRadius(100.004, 10, 3, 0.01)
	test.T(t, r, 100.0)
}
