// Package filter derives the visible subset of a document's decoration
// ranges from the current cursor/selection state. Decorations under a
// selection are suppressed so the raw markdown syntax is shown for editing;
// the survivors are translated back to original-text offsets and grouped by
// kind for the rendering host.
package filter

import (
	"strings"

	"github.com/zjrosen/inkdown/internal/decoration"
	"github.com/zjrosen/inkdown/internal/normalize"
)

// Selection is one cursor or selection span, zero-width for a pure cursor.
// A document may carry several at once (multi-cursor editing). Selections
// are never cached; they are read fresh from the host at filter time.
type Selection struct {
	StartLine int
	StartChar int
	EndLine   int
	EndChar   int
}

// Empty reports whether the selection is a pure cursor.
func (s Selection) Empty() bool {
	return s.StartLine == s.EndLine && s.StartChar == s.EndChar
}

// Apply suppresses every decoration that is "under" the selection state and
// groups the rest by kind. A range is suppressed when it geometrically
// overlaps a non-empty selection (touching endpoints count), when a cursor
// lies strictly inside it, or when any line it spans is touched by any
// selection. The line condition is deliberately coarser than the other two:
// clicking anywhere on a line reveals all decorations on that line.
//
// decorations carry normalized-text offsets; surviving ranges are translated
// to offsets into original before grouping.
func Apply(decorations []decoration.Range, selections []Selection, original string) decoration.Set {
	normalized, _ := normalize.Normalize(original)
	starts := lineStarts(normalized)

	selectedLines := make(map[int]struct{})
	var spans [][2]int // non-empty selection spans, normalized offsets
	var cursors []int  // zero-width selection offsets

	for _, sel := range selections {
		for line := sel.StartLine; line <= sel.EndLine; line++ {
			selectedLines[line] = struct{}{}
		}
		start := offsetAt(starts, len(normalized), sel.StartLine, sel.StartChar)
		end := offsetAt(starts, len(normalized), sel.EndLine, sel.EndChar)
		if sel.Empty() || start == end {
			cursors = append(cursors, start)
		} else {
			spans = append(spans, [2]int{start, end})
		}
	}

	out := make(decoration.Set)
	for _, r := range decorations {
		if suppressed(r, spans, cursors, selectedLines, starts) {
			continue
		}
		mapped := r
		mapped.Start = normalize.MapToOriginal(r.Start, original)
		mapped.End = normalize.MapToOriginal(r.End, original)
		if mapped.Start >= mapped.End || mapped.End > len(original) {
			// Conversion produced an unusable interval; drop the single
			// decoration, not the batch.
			continue
		}
		out[mapped.Kind] = append(out[mapped.Kind], mapped)
	}
	return out
}

func suppressed(r decoration.Range, spans [][2]int, cursors []int, selectedLines map[int]struct{}, starts []int) bool {
	for _, sp := range spans {
		if r.Start <= sp[1] && sp[0] <= r.End {
			return true
		}
	}
	for _, c := range cursors {
		if r.Start < c && c < r.End {
			return true
		}
	}
	startLine := lineOf(starts, r.Start)
	endLine := lineOf(starts, r.End-1)
	for line := startLine; line <= endLine; line++ {
		if _, ok := selectedLines[line]; ok {
			return true
		}
	}
	return false
}

// lineStarts returns the offset of the first byte of every line.
func lineStarts(text string) []int {
	starts := []int{0}
	for {
		i := strings.IndexByte(text[starts[len(starts)-1]:], '\n')
		if i < 0 {
			return starts
		}
		starts = append(starts, starts[len(starts)-1]+i+1)
	}
}

// offsetAt converts a line/character position to a byte offset, clamped to
// the text bounds.
func offsetAt(starts []int, textLen, line, char int) int {
	if line < 0 {
		return 0
	}
	if line >= len(starts) {
		return textLen
	}
	off := starts[line] + char
	if line+1 < len(starts) && off > starts[line+1]-1 {
		off = starts[line+1] - 1
	}
	if off > textLen {
		off = textLen
	}
	return off
}

// lineOf returns the line number containing the byte offset.
func lineOf(starts []int, off int) int {
	lo, hi := 0, len(starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if starts[mid] <= off {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
