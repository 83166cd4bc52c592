package pathopt

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestPointArithmetic(t *testing.T) {
	p := Point{1, 2}
	q := Point{3, -1}

	test.T(t, p.Add(q), Point{4, 1})
	test.T(t, p.Sub(q), Point{-2, 3})
	test.T(t, p.Neg(), Point{-1, -2})
	test.T(t, p.Mul(2), Point{2, 4})
	test.T(t, Point{4, 8}.Div(2), Point{2, 4})
	test.T(t, p.Dot(q), 1.0)
	test.T(t, p.PerpDot(q), -7.0)
}

func TestPointReflect(t *testing.T) {
	p := Point{0, 0}
	q := Point{5, 5}
	test.T(t, p.Reflect(q), Point{10, 10})
}

func TestPointInterpolate(t *testing.T) {
	p := Point{0, 0}
	q := Point{10, 20}
	test.T(t, p.Interpolate(q, 0.5), Point{5, 10})
	test.T(t, p.Interpolate(q, 0.0), p)
	test.T(t, p.Interpolate(q, 1.0), q)
}

func TestPointEquals(t *testing.T) {
	test.That(t, Point{1, 1}.Equals(Point{1.0001, 1}, 0.01))
	test.That(t, !Point{1, 1}.Equals(Point{1.1, 1}, 0.01))
}

func TestPointIsZero(t *testing.T) {
	test.That(t, Point{0, 0}.IsZero())
	test.That(t, !Point{0, 0.1}.IsZero())
}
