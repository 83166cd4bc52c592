package pathopt

import (
	"fmt"
	"math"
)

// Kind identifies a path command's shape, independent of whether it is the
// absolute or relative case. This mirrors the design note in spec.md §9:
// dynamic dispatch on a command letter is replaced by a tagged variant whose
// arity is statically known per kind, with the absolute/relative case carried
// as a separate boolean.
type Kind int

const (
	MoveTo Kind = iota
	LineTo
	HLineTo
	VLineTo
	CubeTo
	SmoothCubeTo
	QuadTo
	SmoothQuadTo
	ArcTo
	ClosePath
)

// arity returns the fixed number of numeric arguments a command of this kind
// carries, per spec.md §3: M/L/T take 2, H/V take 1, S/Q take 4, C and A take
// 6 and 7 respectively, and Z takes none.
func (k Kind) arity() int {
	switch k {
	case MoveTo, LineTo, SmoothQuadTo:
		return 2
	case HLineTo, VLineTo:
		return 1
	case SmoothCubeTo, QuadTo:
		return 4
	case CubeTo:
		return 6
	case ArcTo:
		return 7
	case ClosePath:
		return 0
	}
	panic("pathopt: unknown command kind")
}

// letter returns the command's letter, uppercase for the absolute case and
// lowercase for the relative case.
func (k Kind) letter(abs bool) byte {
	var u byte
	switch k {
	case MoveTo:
		u = 'M'
	case LineTo:
		u = 'L'
	case HLineTo:
		u = 'H'
	case VLineTo:
		u = 'V'
	case CubeTo:
		u = 'C'
	case SmoothCubeTo:
		u = 'S'
	case QuadTo:
		u = 'Q'
	case SmoothQuadTo:
		u = 'T'
	case ArcTo:
		u = 'A'
	case ClosePath:
		u = 'Z'
	default:
		panic("pathopt: unknown command kind")
	}
	if abs {
		return u
	}
	return u + ('a' - 'A')
}

// kindFromLetter decodes a command letter into its kind and absolute/relative
// case. ok is false for any letter outside the twenty recognized forms; per
// spec.md §4.2/§7, rejecting unknown letters is the parser's job upstream, so
// callers of this function are expected to already have validated the input.
func kindFromLetter(c byte) (kind Kind, abs bool, ok bool) {
	abs = 'A' <= c && c <= 'Z'
	lower := c
	if abs {
		lower = c + ('a' - 'A')
	}
	switch lower {
	case 'm':
		return MoveTo, abs, true
	case 'l':
		return LineTo, abs, true
	case 'h':
		return HLineTo, abs, true
	case 'v':
		return VLineTo, abs, true
	case 'c':
		return CubeTo, abs, true
	case 's':
		return SmoothCubeTo, abs, true
	case 'q':
		return QuadTo, abs, true
	case 't':
		return SmoothQuadTo, abs, true
	case 'a':
		return ArcTo, abs, true
	case 'z':
		return ClosePath, abs, true
	}
	return 0, false, false
}

// Item is a single path command plus the annotations the pipeline threads
// through every stage (spec.md §3): Base is the absolute cursor position
// immediately before the command executes, Coords is the absolute cursor
// position immediately after, and SData optionally retains the cubic-form
// coordinates an arc was derived from so a later arc can chain through it.
//
// Coordinate pairs are copied by value on assignment; no Item ever aliases
// another's Base or Coords through a pointer (spec.md §9).
type Item struct {
	Kind Kind
	Abs  bool
	Args []float64

	Base   Point
	Coords Point
	SData  []float64
}

// newItem constructs an Item, panicking if args does not match the kind's
// fixed arity — this is a caller bug, not a runtime data condition (spec.md
// §7 covers malformed *path data*, not malformed constructor calls).
func newItem(kind Kind, abs bool, args []float64) Item {
	if len(args) != kind.arity() {
		panic(fmt.Sprintf("pathopt: command %c needs %d arguments, got %d", kind.letter(abs), kind.arity(), len(args)))
	}
	return Item{Kind: kind, Abs: abs, Args: append([]float64(nil), args...)}
}

// clone returns a deep copy of the item, so that mutating the copy never
// affects the original's Args, Base, Coords or SData slices.
func (it Item) clone() Item {
	c := it
	c.Args = append([]float64(nil), it.Args...)
	if it.SData != nil {
		c.SData = append([]float64(nil), it.SData...)
	}
	return c
}

// ArcConfig enables and parameterizes arc detection (spec.md §4.4.a, §6).
type ArcConfig struct {
	// Threshold scales the error epsilon used as a tolerance floor when
	// verifying a circle fit.
	Threshold float64
	// Tolerance is a percentage of the fitted radius, used as the other half
	// of the tolerance-floor min() in the circle fit test.
	Tolerance float64
}

// DefaultArcConfig matches spec.md §6's documented default.
var DefaultArcConfig = ArcConfig{Threshold: 2.5, Tolerance: 0.5}

// Config holds the per-element options that drive the optimizer (spec.md
// §6). All fields are optional in the sense that DefaultConfig returns the
// documented defaults; a Config is immutable once constructed and safe to
// reuse across elements (it carries no per-element running state — that
// lives in context, built fresh per element by newContext).
type Config struct {
	ApplyTransforms        bool
	ApplyTransformsStroked bool

	MakeArcs *ArcConfig // nil disables arc detection

	StraightCurves        bool
	ConvertToQ            bool
	LineShorthands        bool
	ConvertToZ            bool
	CurveSmoothShorthands bool
	SmartArcRounding      bool
	RemoveUseless         bool
	CollapseRepeated      bool
	UtilizeAbsolute       bool

	FloatPrecision *int // nil disables rounding
	TransformPrecision int

	LeadingZero        bool
	NegativeExtraSpace bool
	NoSpaceAfterFlags  bool
	ForceAbsolutePath  bool
}

// DefaultConfig returns the configuration documented in spec.md §6.
func DefaultConfig() Config {
	p := 3
	arcs := DefaultArcConfig
	return Config{
		ApplyTransforms:        true,
		ApplyTransformsStroked: true,
		MakeArcs:               &arcs,
		StraightCurves:         true,
		ConvertToQ:             true,
		LineShorthands:         true,
		ConvertToZ:             true,
		CurveSmoothShorthands:  true,
		SmartArcRounding:       true,
		RemoveUseless:          true,
		CollapseRepeated:       true,
		UtilizeAbsolute:        true,
		FloatPrecision:         &p,
		TransformPrecision:     5,
		LeadingZero:            true,
		NegativeExtraSpace:     true,
		NoSpaceAfterFlags:      false,
		ForceAbsolutePath:      false,
	}
}

// StyleResolver answers the computed-style queries the pipeline needs (spec.md
// §6) to decide whether closing a subpath with z is safe, and whether the
// output needs a trailing z to keep markers rendering. A host framework
// backs this by a real stylesheet cascade; that cascade is out of scope here
// (spec.md §1) — pathopt only needs the three-way answer this interface
// gives it.
type StyleResolver interface {
	// Stroke reports whether the element is stroked at all (has), and if so,
	// whether stroke-linecap and stroke-linejoin are both statically known
	// to be "round" (roundCapAndJoin). ok is false when the stroke value
	// depends on animation or unresolved CSS; a dynamic stroke is always
	// treated conservatively as unsafe to optimize around.
	Stroke() (has bool, roundCapAndJoin bool, ok bool)
	// Markers reports whether marker-start, marker-mid or marker-end is set.
	// marker-mid matters because a collapsed repeated command (spec.md
	// §4.4.g) would otherwise drop a vertex a mid-marker needed to render on.
	Markers() (start, mid, end bool)
}

// NoStyle is a StyleResolver for callers with no stylesheet to consult: no
// stroke, no markers. This is the conservative-but-permissive default used by
// tests and by callers that only care about the geometric rewrites.
type NoStyle struct{}

func (NoStyle) Stroke() (bool, bool, bool) { return false, false, true }
func (NoStyle) Markers() (bool, bool, bool) { return false, false, false }

// context carries the per-element numeric state derived from a Config, plus
// the style resolver, threaded explicitly through every stage instead of
// living in process-wide variables (spec.md §5, §9). A fresh context is
// built once per element by newContext and never mutated.
type context struct {
	cfg   Config
	style StyleResolver

	precision int     // resolved decimal precision; -1 means rounding is disabled
	eps       float64 // error tolerance derived from precision
}

func newContext(cfg Config, style StyleResolver) *context {
	if style == nil {
		style = NoStyle{}
	}
	ctx := &context{cfg: cfg, style: style}
	if cfg.FloatPrecision == nil {
		ctx.precision = -1
		ctx.eps = 0.01
	} else {
		ctx.precision = *cfg.FloatPrecision
		ctx.eps = math.Pow(10.0, -float64(ctx.precision))
	}
	return ctx
}
