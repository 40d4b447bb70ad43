// Package normalize converts document text to the LF-only coordinate space
// all decoration offsets are computed in, and maps offsets back to the
// original text when the document carried CRLF or lone CR line endings.
package normalize

import "strings"

// Normalize replaces every "\r\n" pair and every lone "\r" with "\n".
// The second return value reports whether any replacement happened, so
// callers know an offset translation back to the original text is needed.
// Text without a single '\r' is returned as-is without scanning further.
func Normalize(text string) (string, bool) {
	if !strings.Contains(text, "\r") {
		return text, false
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\r' {
			b.WriteByte('\n')
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String(), true
}

// MapToOriginal translates an offset in the normalized text to the
// corresponding offset in original. When original contains no CR the mapping
// is the identity. A CRLF pair consumes one normalized unit but two original
// units; when pos lands exactly on the normalized '\n' of a CRLF pair the
// offset of the '\r' is returned, so an exclusive range end mapped back
// excludes the '\r' rather than splitting it from its paired '\n'.
// Unreachable targets map to len(original).
func MapToOriginal(pos int, original string) int {
	if !strings.Contains(original, "\r") {
		if pos > len(original) {
			return len(original)
		}
		return pos
	}

	norm := 0
	for i := 0; i < len(original); {
		if norm == pos {
			return i
		}
		if original[i] == '\r' && i+1 < len(original) && original[i+1] == '\n' {
			i += 2
		} else {
			i++
		}
		norm++
	}
	if norm == pos {
		return len(original)
	}
	return len(original)
}
