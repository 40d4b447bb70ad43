package ui

import (
	"strings"

	"github.com/zjrosen/inkdown/internal/decoration"
)

// lineSpan is one decoration clipped to a single line, in line-local offsets.
type lineSpan struct {
	start, end int
	kind       decoration.Kind
}

// renderLine paints one line of the document. Hide spans are elided,
// marker kinds are substituted with glyphs, and everything else is styled.
// lineStart is the line's byte offset into the document text.
func renderLine(line string, lineStart int, decs decoration.Set, st Styles, width int) string {
	spans := clipToLine(line, lineStart, decs)
	if len(spans) == 0 {
		return line
	}

	// A horizontal rule replaces the whole line with a drawn rule.
	for _, sp := range spans {
		if sp.kind == decoration.HorizontalRule {
			if width < 1 {
				width = 1
			}
			return st.Rule.Render(strings.Repeat("─", width))
		}
	}

	var b strings.Builder
	pos := 0
	for pos < len(line) {
		kinds, segEnd := kindsAt(spans, pos, len(line))

		text := line[pos:segEnd]
		switch {
		case hasKind(kinds, decoration.Hide):
			// Marker glyphs do not render.
		case hasKind(kinds, decoration.CheckboxChecked):
			b.WriteString(st.Checkbox.Render("☑"))
		case hasKind(kinds, decoration.CheckboxUnchecked):
			b.WriteString(st.Checkbox.Render("☐"))
		case hasKind(kinds, decoration.ListItem):
			b.WriteString(st.ListBullet.Render("• "))
		case hasKind(kinds, decoration.Blockquote):
			b.WriteString(st.Blockquote.Render("│"))
		case len(kinds) == 0:
			b.WriteString(text)
		default:
			b.WriteString(st.styleFor(kinds).Render(text))
		}
		pos = segEnd
	}
	return b.String()
}

// clipToLine gathers the decorations intersecting the line, converted to
// line-local offsets.
func clipToLine(line string, lineStart int, decs decoration.Set) []lineSpan {
	lineEnd := lineStart + len(line)
	var spans []lineSpan
	for kind, ranges := range decs {
		for _, r := range ranges {
			if r.End <= lineStart || r.Start >= lineEnd {
				continue
			}
			s, e := r.Start-lineStart, r.End-lineStart
			if s < 0 {
				s = 0
			}
			if e > len(line) {
				e = len(line)
			}
			if s < e {
				spans = append(spans, lineSpan{start: s, end: e, kind: kind})
			}
		}
	}
	return spans
}

// kindsAt returns the kinds covering pos and the end of the segment over
// which that set stays constant.
func kindsAt(spans []lineSpan, pos, lineLen int) ([]decoration.Kind, int) {
	var kinds []decoration.Kind
	segEnd := lineLen
	for _, sp := range spans {
		if sp.start <= pos && pos < sp.end {
			kinds = append(kinds, sp.kind)
			if sp.end < segEnd {
				segEnd = sp.end
			}
		} else if sp.start > pos && sp.start < segEnd {
			segEnd = sp.start
		}
	}
	return kinds, segEnd
}

func hasKind(kinds []decoration.Kind, want decoration.Kind) bool {
	for _, k := range kinds {
		if k == want {
			return true
		}
	}
	return false
}
