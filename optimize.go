package pathopt

// Optimize rewrites a parsed path-data command sequence into its shortest
// equivalent serialization (spec.md §2): relative-ization, the filter
// pipeline, the absolute-vs-relative chooser, and the serializer, run in
// that fixed order over a context built fresh for this one element.
//
// items is typically the result of ParsePath, though any caller-built
// sequence of well-formed Items works equally well — Base/Coords on the input
// are ignored and recomputed by relativize, which reads Abs to tell absolute
// arguments from relative ones. style may be nil,
// in which case NoStyle is used.
//
// When the element carries a marker that depends on a non-move command the
// filter stage has since optimized away entirely, a closing z is appended
// before serializing so the marker still has something to orient itself by
// (spec.md §4.6).
func Optimize(items []Item, cfg Config, style StyleResolver) string {
	ctx := newContext(cfg, style)

	rel := relativize(items)
	filtered := filterPass(rel, ctx)
	chosen := chooseCase(filtered, ctx)

	if needsMarkerCloseFixup(items, chosen, ctx.style) {
		chosen = append(chosen, Item{Kind: ClosePath, Abs: false})
	}

	return serialize(chosen, ctx)
}

// needsMarkerCloseFixup implements spec.md §4.6: marker-start and marker-end
// both derive the angle they render at from a drawing command's direction,
// not from a bare moveto. If the original path had at least one non-move
// command but every one of them has since been filtered away — most often
// RemoveUseless dropping a zero-length segment down to nothing — a marker
// that depended on one is left with no direction to orient by, and a
// trailing z is appended to stand in for it.
func needsMarkerCloseFixup(original, filtered []Item, style StyleResolver) bool {
	start, _, end := style.Markers()
	if !start && !end {
		return false
	}
	if !hasNonMove(original) {
		return false
	}
	return !hasNonMove(filtered)
}

func hasNonMove(items []Item) bool {
	for _, it := range items {
		if it.Kind != MoveTo {
			return true
		}
	}
	return false
}
