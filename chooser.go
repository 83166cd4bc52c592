package pathopt

// toAbsoluteArgs is toRelativeArgs's inverse: it adds the cursor back into
// every positional (x,y) pair or axis value in a relative item's args, using
// the same per-command layout rule (spec.md §4.3/§4.5).
func toAbsoluteArgs(kind Kind, args []float64, cursor Point) []float64 {
	out := append([]float64(nil), args...)
	switch kind {
	case MoveTo, LineTo, SmoothQuadTo:
		out[0] += cursor.X
		out[1] += cursor.Y
	case HLineTo:
		out[0] += cursor.X
	case VLineTo:
		out[0] += cursor.Y
	case QuadTo, SmoothCubeTo:
		out[0] += cursor.X
		out[1] += cursor.Y
		out[2] += cursor.X
		out[3] += cursor.Y
	case CubeTo:
		out[0] += cursor.X
		out[1] += cursor.Y
		out[2] += cursor.X
		out[3] += cursor.Y
		out[4] += cursor.X
		out[5] += cursor.Y
	case ArcTo:
		out[5] += cursor.X
		out[6] += cursor.Y
	}
	return out
}

// chooseCase runs the second, independent pass over the filtered item
// sequence (spec.md §4.5): for every item but the first (which stays
// absolute per the M/m invariant) and every ClosePath (which carries no
// coordinates to flip), it computes both the absolute and relative
// serialized length and keeps the shorter, with ties going to relative.
//
// A one-character saving for the absolute form is special-cased: when
// negativeExtraSpace is enabled, the preceding output command is itself
// relative, and the item's own first argument is negative, relative is kept
// instead. serialize writes a letter before every command, so in that case
// the kept relative form is one character longer than the absolute one.
func chooseCase(items []Item, ctx *context) []Item {
	if !ctx.cfg.UtilizeAbsolute && !ctx.cfg.ForceAbsolutePath {
		return items
	}
	out := make([]Item, len(items))
	for i, it := range items {
		if i == 0 || it.Kind == ClosePath {
			out[i] = it
			continue
		}
		if it.Abs {
			out[i] = it
			continue
		}

		relLen := commandLen(it.Kind, it.Args, ctx)
		absArgs := toAbsoluteArgs(it.Kind, it.Args, it.Base)
		absLen := commandLen(it.Kind, absArgs, ctx)

		useAbs := ctx.cfg.ForceAbsolutePath
		if !useAbs && absLen < relLen {
			useAbs = true
			if ctx.cfg.NegativeExtraSpace && absLen == relLen-1 &&
				!out[i-1].Abs && len(it.Args) > 0 && it.Args[0] < 0.0 {
				useAbs = false
			}
		}
		if !useAbs {
			out[i] = it
			continue
		}
		abs := it
		abs.Abs = true
		abs.Args = absArgs
		out[i] = abs
	}
	return out
}
