// Package pathopt rewrites SVG path data into an equivalent, shorter
// textual form. It relativizes commands, detects arcs and straight lines
// hidden inside cubic curves, recognizes smooth-curve shorthands, rounds
// coordinates within a configured error tolerance, and picks the shorter of
// the absolute or relative encoding for each command.
package pathopt
