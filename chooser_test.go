package pathopt

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestToAbsoluteArgs(t *testing.T) {
	out := toAbsoluteArgs(LineTo, []float64{5, 5}, Point{10, 10})
	test.T(t, out, []float64{15, 15})

	out = toAbsoluteArgs(HLineTo, []float64{5}, Point{10, 10})
	test.T(t, out, []float64{15})

	out = toAbsoluteArgs(ArcTo, []float64{5, 5, 0, 1, 0, 5, 5}, Point{10, 10})
	test.T(t, out, []float64{5, 5, 0, 1, 0, 15, 15})
}

func TestChooseCaseKeepsRelativeOnTie(t *testing.T) {
	cfg := DefaultConfig()
	ctx := newContext(cfg, nil)
	// a delta from the origin serializes to the same length either way
	items := []Item{
		{Kind: MoveTo, Abs: true, Args: []float64{0, 0}, Base: Point{0, 0}, Coords: Point{0, 0}},
		{Kind: LineTo, Abs: false, Args: []float64{1, 1}, Base: Point{0, 0}, Coords: Point{1, 1}},
	}
	out := chooseCase(items, ctx)
	test.T(t, out[1].Abs, false)
}

func TestChooseCasePicksShorterAbsolute(t *testing.T) {
	cfg := DefaultConfig()
	ctx := newContext(cfg, nil)
	// relative delta is a large negative number (long), absolute target is small
	items := []Item{
		{Kind: MoveTo, Abs: true, Args: []float64{1000, 1000}, Base: Point{0, 0}, Coords: Point{1000, 1000}},
		{Kind: LineTo, Abs: false, Args: []float64{-999, -999}, Base: Point{1000, 1000}, Coords: Point{1, 1}},
	}
	out := chooseCase(items, ctx)
	test.T(t, out[1].Abs, true)
	test.T(t, out[1].Args, []float64{1, 1})
}

func TestChooseCaseForceAbsolute(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ForceAbsolutePath = true
	ctx := newContext(cfg, nil)
	items := []Item{
		{Kind: MoveTo, Abs: true, Args: []float64{0, 0}, Base: Point{0, 0}, Coords: Point{0, 0}},
		{Kind: LineTo, Abs: false, Args: []float64{1, 1}, Base: Point{0, 0}, Coords: Point{1, 1}},
	}
	out := chooseCase(items, ctx)
	test.T(t, out[1].Abs, true)
}

func TestChooseCaseNegativeSignTieBreak(t *testing.T) {
	cfg := DefaultConfig()
	ctx := newContext(cfg, nil)
	// the H's absolute target (1) saves exactly one character over its
	// relative delta (-5), but the preceding L stayed relative and the H's
	// own first argument is negative, so the tie-break keeps it relative.
	items := []Item{
		{Kind: MoveTo, Abs: true, Args: []float64{0, 0}, Base: Point{0, 0}, Coords: Point{0, 0}},
		{Kind: LineTo, Abs: false, Args: []float64{1, 1}, Base: Point{0, 0}, Coords: Point{1, 1}},
		{Kind: HLineTo, Abs: false, Args: []float64{-5}, Base: Point{6, 1}, Coords: Point{1, 1}},
	}
	out := chooseCase(items, ctx)
	test.T(t, out[1].Abs, false)
	test.T(t, out[2].Abs, false)
}

func TestChooseCasePositiveArgSkipsTieBreak(t *testing.T) {
	cfg := DefaultConfig()
	ctx := newContext(cfg, nil)
	// same one-character saving, but the relative delta is positive so there
	// is no sign to double as a separator: the absolute form wins outright.
	items := []Item{
		{Kind: MoveTo, Abs: true, Args: []float64{0, 0}, Base: Point{0, 0}, Coords: Point{0, 0}},
		{Kind: LineTo, Abs: false, Args: []float64{1, 1}, Base: Point{0, 0}, Coords: Point{1, 1}},
		{Kind: HLineTo, Abs: false, Args: []float64{15}, Base: Point{-9, 1}, Coords: Point{6, 1}},
	}
	out := chooseCase(items, ctx)
	test.T(t, out[2].Abs, true)
	test.T(t, out[2].Args, []float64{6})
}

func TestChooseCaseTieBreakRequiresNegativeExtraSpace(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NegativeExtraSpace = false
	ctx := newContext(cfg, nil)
	items := []Item{
		{Kind: MoveTo, Abs: true, Args: []float64{0, 0}, Base: Point{0, 0}, Coords: Point{0, 0}},
		{Kind: LineTo, Abs: false, Args: []float64{1, 1}, Base: Point{0, 0}, Coords: Point{1, 1}},
		{Kind: HLineTo, Abs: false, Args: []float64{-5}, Base: Point{6, 1}, Coords: Point{1, 1}},
	}
	out := chooseCase(items, ctx)
	test.T(t, out[2].Abs, true)
}

func TestChooseCaseSkipsFirstAndClose(t *testing.T) {
	cfg := DefaultConfig()
	ctx := newContext(cfg, nil)
	items := []Item{
		{Kind: MoveTo, Abs: true, Args: []float64{5, 5}, Base: Point{0, 0}, Coords: Point{5, 5}},
		{Kind: ClosePath, Base: Point{5, 5}, Coords: Point{5, 5}},
	}
	out := chooseCase(items, ctx)
	test.T(t, out[0].Args, []float64{5, 5})
	test.T(t, out[1].Kind, ClosePath)
}
