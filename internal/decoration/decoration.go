// Package decoration defines the typed character ranges the extractor
// produces and the grouping consumed by rendering hosts.
//
// A Range is a half-open byte interval [Start, End) over the normalized
// (LF-only) document text. Ranges of the same kind never overlap; ranges of
// different kinds may coincide (a heading span carries both the generic
// heading kind and its level-specific kind at once). Zero-width ranges are
// never emitted.
package decoration

import "sort"

// Kind identifies the visual treatment applied to a range.
type Kind string

const (
	// Hide marks syntax characters whose glyphs must not render.
	Hide Kind = "hide"

	Bold          Kind = "bold"
	Italic        Kind = "italic"
	BoldItalic    Kind = "boldItalic"
	Strikethrough Kind = "strikethrough"
	Code          Kind = "code"
	CodeBlock     Kind = "codeBlock"

	// Heading is emitted alongside the level-specific kind for the same span.
	Heading  Kind = "heading"
	Heading1 Kind = "heading1"
	Heading2 Kind = "heading2"
	Heading3 Kind = "heading3"
	Heading4 Kind = "heading4"
	Heading5 Kind = "heading5"
	Heading6 Kind = "heading6"

	Link  Kind = "link"
	Image Kind = "image"

	Blockquote        Kind = "blockquote"
	ListItem          Kind = "listItem"
	CheckboxUnchecked Kind = "checkboxUnchecked"
	CheckboxChecked   Kind = "checkboxChecked"
	HorizontalRule    Kind = "horizontalRule"
)

// HeadingKind returns the level-specific heading kind for level 1..6.
// Out-of-range levels clamp to the nearest valid level.
func HeadingKind(level int) Kind {
	switch {
	case level <= 1:
		return Heading1
	case level >= 6:
		return Heading6
	}
	return Kind([]string{"", "heading1", "heading2", "heading3", "heading4", "heading5", "heading6"}[level])
}

// Range is one decoration over the normalized document text.
type Range struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Kind  Kind   `json:"kind"`
	URL   string `json:"url,omitempty"`   // set for link and image ranges
	Level int    `json:"level,omitempty"` // set for heading ranges
}

// Contains reports whether the byte offset pos falls inside the range.
func (r Range) Contains(pos int) bool {
	return r.Start <= pos && pos < r.End
}

// Set groups ranges by kind, the shape rendering hosts consume.
type Set map[Kind][]Range

// SortStable orders ranges ascending by Start, preserving insertion order
// for equal starts so extraction stays deterministic.
func SortStable(ranges []Range) {
	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].Start < ranges[j].Start
	})
}

// Group buckets ranges by kind. The per-kind slices keep their input order.
func Group(ranges []Range) Set {
	set := make(Set)
	for _, r := range ranges {
		set[r.Kind] = append(set[r.Kind], r)
	}
	return set
}
