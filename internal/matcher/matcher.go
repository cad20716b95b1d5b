// Package matcher holds the filename patterns recognized by slicerename.
package matcher

import (
	"regexp"
	"strings"
)

// SlicePattern matches stems emitted by the scanner software, e.g. "slice_02_r01_c02".
// Group 1 is the scene number, group 2 the row, group 3 the column.
var SlicePattern = regexp.MustCompile(`(?i)^slice_(\d+)_r(\d+)_c(\d+)$`)

// CanonicalPattern matches stems that are already in the "s<row>-<col>" form.
var CanonicalPattern = regexp.MustCompile(`(?i)^s\d+-\d+$`)

// SliceMatch is the parsed form of a stem that matched SlicePattern.
// Numbers are kept as decimal strings without leading zeros, so any digit
// count is accepted.
type SliceMatch struct {
	Scene string // Scene number, parsed but not used in the target name
	Row   string
	Col   string
}

// MatchSlice parses stem against SlicePattern.
// The whole stem must match. Numbers are read as base-10, so "r01" yields "1".
func MatchSlice(stem string) (SliceMatch, bool) {
	m := SlicePattern.FindStringSubmatch(stem)
	if m == nil {
		return SliceMatch{}, false
	}
	return SliceMatch{
		Scene: NormalizeNumber(m[1]),
		Row:   NormalizeNumber(m[2]),
		Col:   NormalizeNumber(m[3]),
	}, true
}

// NormalizeNumber strips leading zeros from a run of digits. "000" becomes "0".
func NormalizeNumber(digits string) string {
	n := strings.TrimLeft(digits, "0")
	if n == "" {
		return "0"
	}
	return n
}

// IsCanonical reports whether stem is already in canonical "s<row>-<col>" form.
func IsCanonical(stem string) bool {
	return CanonicalPattern.MatchString(stem)
}
