package pathopt

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestKindArity(t *testing.T) {
	test.T(t, MoveTo.arity(), 2)
	test.T(t, HLineTo.arity(), 1)
	test.T(t, VLineTo.arity(), 1)
	test.T(t, CubeTo.arity(), 6)
	test.T(t, SmoothCubeTo.arity(), 4)
	test.T(t, QuadTo.arity(), 4)
	test.T(t, SmoothQuadTo.arity(), 2)
	test.T(t, ArcTo.arity(), 7)
	test.T(t, ClosePath.arity(), 0)
}

func TestKindLetter(t *testing.T) {
	test.T(t, MoveTo.letter(true), byte('M'))
	test.T(t, MoveTo.letter(false), byte('m'))
	test.T(t, ArcTo.letter(true), byte('A'))
	test.T(t, ArcTo.letter(false), byte('a'))
	test.T(t, ClosePath.letter(true), byte('Z'))
}

func TestKindFromLetter(t *testing.T) {
	kind, abs, ok := kindFromLetter('C')
	test.That(t, ok)
	test.T(t, kind, CubeTo)
	test.That(t, abs)

	kind, abs, ok = kindFromLetter('s')
	test.That(t, ok)
	test.T(t, kind, SmoothCubeTo)
	test.That(t, !abs)

	_, _, ok = kindFromLetter('x')
	test.That(t, !ok)
}

func TestNewItemPanicsOnArityMismatch(t *testing.T) {
	defer func() {
		r := recover()
		test.That(t, r != nil)
	}()
	newItem(LineTo, false, []float64{1})
}

func TestItemClone(t *testing.T) {
	it := Item{Kind: CubeTo, Args: []float64{1, 2, 3, 4, 5, 6}, SData: []float64{1, 2}}
	c := it.clone()
	c.Args[0] = 99
	c.SData[0] = 99
	test.T(t, it.Args[0], 1.0)
	test.T(t, it.SData[0], 1.0)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	test.That(t, cfg.MakeArcs != nil)
	test.T(t, *cfg.FloatPrecision, 3)
	test.That(t, cfg.RemoveUseless)
}

func TestNoStyle(t *testing.T) {
	var s StyleResolver = NoStyle{}
	has, round, ok := s.Stroke()
	test.That(t, !has)
	test.That(t, !round)
	test.That(t, ok)

	start, mid, end := s.Markers()
	test.That(t, !start)
	test.That(t, !mid)
	test.That(t, !end)
}

func TestNewContext(t *testing.T) {
	cfg := DefaultConfig()
	ctx := newContext(cfg, nil)
	test.T(t, ctx.precision, 3)
	test.T(t, ctx.eps, 0.001)
	test.That(t, ctx.style != nil)

	cfg.FloatPrecision = nil
	ctx2 := newContext(cfg, nil)
	test.T(t, ctx2.precision, -1)
}
