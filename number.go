package pathopt

import (
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/minify/v2"
)

// roundHalfAwayFromZero rounds v to the nearest integer, breaking ties away
// from zero (1.5 -> 2, -1.5 -> -2), matching SVG authoring tools rather than
// the banker's rounding some languages default to.
func roundHalfAwayFromZero(v float64) float64 {
	if v < 0.0 {
		return -math.Floor(-v + 0.5)
	}
	return math.Floor(v + 0.5)
}

func roundTo(v float64, p int) float64 {
	scale := math.Pow(10.0, float64(p))
	return roundHalfAwayFromZero(v*scale) / scale
}

// smartRound implements spec.md §4.1: it prefers a one-digit-shorter rounding
// of v when the extra digit precision p would have added contributes less
// than eps, e.g. 2.3491 rounds to 2.35 rather than 2.349 when the difference
// is within tolerance. Precision at or below zero, or at or above 20, falls
// back to plain integer rounding.
func smartRound(v float64, p int, eps float64) float64 {
	if p <= 0 || 20 <= p {
		return roundHalfAwayFromZero(v)
	}
	rp := roundTo(v, p)
	rp1 := roundTo(v, p-1)
	diff := roundTo(math.Abs(rp1-v), p+1)
	if diff < eps {
		return rp1
	}
	return rp
}

// formatNumber rounds v per the element's precision and renders it as the
// shortest decimal string, with trailing zeros and redundant signs stripped
// by minify.Number and the leading-zero policy applied afterward.
func formatNumber(v float64, ctx *context) string {
	if ctx.precision >= 0 {
		v = smartRound(v, ctx.precision, ctx.eps)
	}
	if v == 0.0 {
		v = 0.0 // collapse -0 to 0
	}

	prec := ctx.precision
	if prec < 0 {
		prec = 20
	}
	buf := strconv.AppendFloat(nil, v, 'f', -1, 64)
	buf = minify.Number(buf, prec)
	s := string(buf)

	if ctx.cfg.LeadingZero {
		s = stripLeadingZero(s)
	} else {
		s = ensureLeadingZero(s)
	}
	return s
}

func stripLeadingZero(s string) string {
	if strings.HasPrefix(s, "0.") {
		return s[1:]
	}
	if strings.HasPrefix(s, "-0.") {
		return "-" + s[2:]
	}
	return s
}

func ensureLeadingZero(s string) string {
	if strings.HasPrefix(s, ".") {
		return "0" + s
	}
	if strings.HasPrefix(s, "-.") {
		return "-0" + s[1:]
	}
	return s
}

// formatFlag renders an arc's large-arc or sweep flag as a bare "0" or "1",
// bypassing precision rounding and the leading-zero policy entirely — flags
// are always exactly one digit.
func formatFlag(v float64) string {
	if v != 0.0 {
		return "1"
	}
	return "0"
}

// isArcFlagIndex reports whether argument index i of an ArcTo command is the
// large-arc-flag (3) or sweep-flag (4) position, per spec.md §3's arc
// argument order (rx, ry, x-axis-rotation, large-arc-flag, sweep-flag, x, y).
func isArcFlagIndex(i int) bool {
	return i == 3 || i == 4
}

// commandLen returns the serialized length of a single command, letter
// included, using the same rounding and delimiter rules formatArgList uses.
// Rewrite rules that only accept a shorter encoding (curve-to-line,
// cubic-to-quadratic, arc detection) compare candidates through this.
func commandLen(kind Kind, args []float64, ctx *context) int {
	return 1 + len(formatArgList(kind, args, ctx))
}

// formatArgList renders a command's rounded arguments with minimized
// delimiters: numbers are separated by a single space unless negativeExtraSpace
// is set and the next one starts with a minus sign (which then doubles as the
// separator), and when
// noSpaceAfterFlags is set, an arc's flag digits never need a separator from
// whatever follows them, since a flag is always exactly one character.
func formatArgList(kind Kind, args []float64, ctx *context) string {
	strs := make([]string, len(args))
	for i, a := range args {
		if kind == ArcTo && isArcFlagIndex(i) {
			strs[i] = formatFlag(a)
		} else {
			strs[i] = formatNumber(a, ctx)
		}
	}

	var sb strings.Builder
	for i, s := range strs {
		if i > 0 {
			elideAfterFlag := kind == ArcTo && ctx.cfg.NoSpaceAfterFlags && isArcFlagIndex(i-1)
			fuses := ctx.cfg.NegativeExtraSpace && strings.HasPrefix(s, "-")
			if !elideAfterFlag && !fuses {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(s)
	}
	return sb.String()
}
