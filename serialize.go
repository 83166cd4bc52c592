package pathopt

import "strings"

// serialize concatenates each item's command letter with its formatted
// argument list (spec.md §4.6). No separator ever precedes a letter: the
// letter itself is an unambiguous boundary, so the numeric-separator and
// negative-sign-fusion rules in formatArgList only ever apply within a
// single command's own arguments.
func serialize(items []Item, ctx *context) string {
	var sb strings.Builder
	for _, it := range items {
		sb.WriteByte(it.Kind.letter(it.Abs))
		sb.WriteString(formatArgList(it.Kind, it.Args, ctx))
	}
	return sb.String()
}
