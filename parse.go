package pathopt

import (
	"github.com/tdewolff/strconv"
)

// ParsePath turns an SVG `d` attribute into a sequence of raw Items (command,
// case, arguments), with Base/Coords left unset. This stands in for the host
// framework's own `d`-attribute parser (spec.md §6): the pipeline itself only
// needs the (command, arguments) pairs this produces, it does not care how
// they were produced. It is provided here so Optimize can be exercised
// end-to-end without a host, and is grounded on the same scanning style as
// the teacher's ParseSVGPath (skip comma/whitespace, reuse the previous
// command letter when none is given).
func ParsePath(d string) []Item {
	b := []byte(d)
	items := make([]Item, 0, len(d)/4)

	var prevLetter byte
	i := 0
	for i < len(b) {
		i += skipCommaWhitespace(b[i:])
		if i >= len(b) {
			break
		}
		letter := prevLetter
		if isCommandLetter(b[i]) {
			letter = b[i]
			i++
		}
		kind, abs, ok := kindFromLetter(letter)
		if !ok {
			break // unknown command letters are out of scope (spec.md §4, §7)
		}

		var args []float64
		if kind == ArcTo {
			args = make([]float64, 7)
			args[0], i = parseNum(b, i)
			args[1], i = parseNum(b, i)
			args[2], i = parseNum(b, i)
			args[3], i = parseFlag(b, i)
			args[4], i = parseFlag(b, i)
			args[5], i = parseNum(b, i)
			args[6], i = parseNum(b, i)
		} else {
			n := kind.arity()
			args = make([]float64, n)
			for j := 0; j < n; j++ {
				args[j], i = parseNum(b, i)
			}
		}

		items = append(items, newItem(kind, abs, args))

		// after the first moveto, an implicit repeat of a moveto's extra
		// coordinate pairs is a lineto of the same case
		if kind == MoveTo {
			if abs {
				prevLetter = 'L'
			} else {
				prevLetter = 'l'
			}
		} else {
			prevLetter = letter
		}
	}
	return items
}

func isCommandLetter(c byte) bool {
	_, _, ok := kindFromLetter(c)
	return ok
}

func skipCommaWhitespace(b []byte) int {
	i := 0
	for i < len(b) {
		switch b[i] {
		case ' ', ',', '\n', '\r', '\t':
			i++
			continue
		}
		break
	}
	return i
}

func parseNum(b []byte, i int) (float64, int) {
	i += skipCommaWhitespace(b[i:])
	f, n := strconv.ParseFloat(b[i:])
	return f, i + n
}

// parseFlag parses a single-digit arc flag (0 or 1), which per the SVG
// grammar may be packed directly against neighboring numbers without a
// separator (e.g. "0130" is flag "0", flag "1", then the number "30").
func parseFlag(b []byte, i int) (float64, int) {
	i += skipCommaWhitespace(b[i:])
	if i < len(b) && (b[i] == '0' || b[i] == '1') {
		v := float64(b[i] - '0')
		return v, i + 1
	}
	f, n := strconv.ParseFloat(b[i:])
	return f, i + n
}
