package pathopt

// relativize walks a raw command sequence (as produced by ParsePath or a host
// parser) and converts every absolute command to its relative form, per
// spec.md §4.3. The first command is the sole exception and stays absolute.
// Every returned Item is annotated with Base (the cursor before the command)
// and Coords (the cursor after).
func relativize(items []Item) []Item {
	out := make([]Item, 0, len(items))
	cursor := Point{}
	start := Point{}

	for idx, src := range items {
		it := src.clone()

		if idx == 0 {
			// invariant: the path begins with an absolute M (spec.md §3)
			it.Abs = true
			it.Base = cursor
			end := endpointOf(it.Kind, it.Args, cursor, start)
			cursor = end
			start = cursor
			it.Coords = cursor
			out = append(out, it)
			continue
		}

		if it.Kind == ClosePath {
			it.Base = cursor
			cursor = start
			it.Coords = cursor
			out = append(out, it)
			continue
		}

		if it.Abs {
			it.Args = toRelativeArgs(it.Kind, it.Args, cursor)
			it.Abs = false
		}

		it.Base = cursor
		delta := endpointDelta(it.Kind, it.Args)
		cursor = cursor.Add(delta)
		if it.Kind == MoveTo {
			start = cursor
		}
		it.Coords = cursor
		out = append(out, it)
	}
	return out
}

// toRelativeArgs subtracts the cursor from every positional (x,y) pair or
// axis value in args, per the per-command rule in spec.md §4.3: both
// components for M/L/T, only the matching axis for H/V, all three pairs for
// C, both pairs for S/Q, and only the final (x,y) pair for A.
func toRelativeArgs(kind Kind, args []float64, cursor Point) []float64 {
	out := append([]float64(nil), args...)
	switch kind {
	case MoveTo, LineTo, SmoothQuadTo:
		out[0] -= cursor.X
		out[1] -= cursor.Y
	case HLineTo:
		out[0] -= cursor.X
	case VLineTo:
		out[0] -= cursor.Y
	case QuadTo, SmoothCubeTo:
		out[0] -= cursor.X
		out[1] -= cursor.Y
		out[2] -= cursor.X
		out[3] -= cursor.Y
	case CubeTo:
		out[0] -= cursor.X
		out[1] -= cursor.Y
		out[2] -= cursor.X
		out[3] -= cursor.Y
		out[4] -= cursor.X
		out[5] -= cursor.Y
	case ArcTo:
		out[5] -= cursor.X
		out[6] -= cursor.Y
	}
	return out
}

// endpointDelta returns the (dx,dy) the cursor advances by once a relative
// command's args are applied.
func endpointDelta(kind Kind, args []float64) Point {
	switch kind {
	case MoveTo, LineTo, SmoothQuadTo:
		return Point{args[0], args[1]}
	case HLineTo:
		return Point{args[0], 0.0}
	case VLineTo:
		return Point{0.0, args[0]}
	case QuadTo, SmoothCubeTo:
		return Point{args[2], args[3]}
	case CubeTo:
		return Point{args[4], args[5]}
	case ArcTo:
		return Point{args[5], args[6]}
	}
	return Point{}
}

// endpointOf returns the absolute endpoint of an absolute command, used only
// for the path's leading M.
func endpointOf(kind Kind, args []float64, cursor, start Point) Point {
	switch kind {
	case MoveTo, LineTo, SmoothQuadTo:
		return Point{args[0], args[1]}
	case HLineTo:
		return Point{args[0], cursor.Y}
	case VLineTo:
		return Point{cursor.X, args[0]}
	case QuadTo, SmoothCubeTo:
		return Point{args[2], args[3]}
	case CubeTo:
		return Point{args[4], args[5]}
	case ArcTo:
		return Point{args[5], args[6]}
	case ClosePath:
		return start
	}
	return cursor
}
