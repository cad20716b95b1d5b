// Package classifier decides what slicerename does with each candidate file.
package classifier

import (
	"fmt"

	"slicerename/internal/matcher"
)

// TargetExtension is the extension every renamed file receives, whatever its source extension.
const TargetExtension = ".png"

// ClassificationType identifies which filename pattern a stem satisfied.
type ClassificationType string

const (
	// Matched stems follow the scanner pattern and will be renamed.
	Matched ClassificationType = "MATCHED"
	// Canonical stems are already in s<row>-<col> form and are skipped silently.
	Canonical ClassificationType = "CANONICAL"
	// Unrecognized stems match neither pattern and are reported unchanged.
	Unrecognized ClassificationType = "UNRECOGNIZED"
)

// Classification represents the result of classifying a file stem.
type Classification struct {
	Type       ClassificationType
	Row        string // Decimal, leading zeros stripped
	Col        string
	TargetName string // Only set for Matched
}

// Classify determines what to do with a file based on its stem.
// The scanner pattern takes precedence; the canonical pattern is only consulted
// for stems that are not scanner slices.
func Classify(stem string) *Classification {
	if m, ok := matcher.MatchSlice(stem); ok {
		return &Classification{
			Type:       Matched,
			Row:        m.Row,
			Col:        m.Col,
			TargetName: TargetName(m.Row, m.Col),
		}
	}

	if matcher.IsCanonical(stem) {
		return &Classification{Type: Canonical}
	}

	return &Classification{Type: Unrecognized}
}

// TargetName builds the canonical filename for a row and column.
func TargetName(row, col string) string {
	return fmt.Sprintf("s%s-%s%s", row, col, TargetExtension)
}

// IsMatched returns true if the file should be renamed.
func (c *Classification) IsMatched() bool {
	return c.Type == Matched
}

// IsCanonical returns true if the file is already in canonical form.
func (c *Classification) IsCanonical() bool {
	return c.Type == Canonical
}

// IsUnrecognized returns true if the file matched neither pattern.
func (c *Classification) IsUnrecognized() bool {
	return c.Type == Unrecognized
}
