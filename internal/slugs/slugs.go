// Package slugs normalizes free-form text into identifier segments.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// MaxSegmentLen caps a generated segment so backlog items with long
// descriptions still produce usable identifiers.
const MaxSegmentLen = 50

// Segment converts free-form text into a single identifier segment:
// lowercase, ASCII, dash-separated, with no dots.
func Segment(text string) string {
	s := goslug.Make(text)
	// Dots separate hierarchy levels and may not appear inside a segment.
	s = strings.ReplaceAll(s, ".", "-")
	if len(s) > MaxSegmentLen {
		s = s[:MaxSegmentLen]
		s = strings.Trim(s, "-")
	}
	return s
}
