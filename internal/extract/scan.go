package extract

import (
	"strings"

	"github.com/zjrosen/inkdown/internal/decoration"
)

// PatchEmptyImageAlt appends hide ranges for degenerate "![]" image forms the
// grammar reports no node for, and returns the extended slice. Matches
// already covered by an existing range are left alone. The scan short-
// circuits when the text contains no "![" at all.
func PatchEmptyImageAlt(text string, ranges []decoration.Range) []decoration.Range {
	if !strings.Contains(text, "![") {
		return ranges
	}

	from := 0
	for {
		rel := strings.Index(text[from:], "![]")
		if rel < 0 {
			return ranges
		}
		pos := from + rel
		from = pos + 3

		if covered(ranges, pos) {
			continue
		}
		ranges = append(ranges,
			decoration.Range{Start: pos, End: pos + 2, Kind: decoration.Hide},
			decoration.Range{Start: pos + 2, End: pos + 3, Kind: decoration.Hide},
		)
	}
}

func covered(ranges []decoration.Range, pos int) bool {
	for _, r := range ranges {
		if r.Contains(pos) {
			return true
		}
	}
	return false
}
