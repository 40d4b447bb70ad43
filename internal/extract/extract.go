// Package extract compiles markdown text into a flat, sorted list of
// decoration ranges. The text is parsed with goldmark (CommonMark + GFM
// strikethrough/tasklist/table) and the syntax tree is walked once,
// dispatching a handler per node kind. Handlers locate syntax markers in the
// raw source rather than trusting grammar metadata, emit hide ranges over the
// markers and typed ranges over the content, and skip silently whenever a
// node carries no usable position information.
//
// Extract is total: a parser panic degrades to whatever ranges were
// accumulated before the failure, never to an error. Markdown is never
// invalid, only imperfectly decorated.
package extract

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/zjrosen/inkdown/internal/decoration"
	"github.com/zjrosen/inkdown/internal/log"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Ranges runs the full compilation pipeline over normalized text: the AST
// walk followed by the raw-text post-pass, re-sorted into one flat list.
func Ranges(normalized string) []decoration.Range {
	ranges := Extract(normalized)
	ranges = PatchEmptyImageAlt(normalized, ranges)
	decoration.SortStable(ranges)
	return ranges
}

// Extract parses normalized (LF-only) text and returns its decoration
// ranges sorted ascending by start offset. Equal starts keep insertion
// order, so identical input always yields identical output.
func Extract(normalized string) []decoration.Range {
	e := &extractor{
		src:       []byte(normalized),
		extents:   make(map[ast.Node]span),
		consumed:  make(map[ast.Node]struct{}),
		processed: make(map[int]struct{}),
	}
	e.run()
	decoration.SortStable(e.ranges)
	return e.ranges
}

// span is a half-open byte interval in the source.
type span struct {
	start, end int
	ok         bool
}

// extractor holds the state of one extraction pass. The accumulator and the
// blockquote position set live exactly as long as the pass; nothing is
// shared across calls or documents.
type extractor struct {
	src       []byte
	ranges    []decoration.Range
	stack     []ast.Node            // ancestors of the node being visited
	extents   map[ast.Node]span     // memoized inline extents
	consumed  map[ast.Node]struct{} // emphasis nodes already emitted by an enclosing handler
	processed map[int]struct{}      // '>' offsets already decorated
	hrCursor  int                   // monotonic search position for thematic breaks
}

func (e *extractor) run() {
	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatExtract, "parser panic recovered, emitting partial ranges", "panic", r)
		}
	}()

	doc := markdown.Parser().Parse(text.NewReader(e.src))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if len(e.stack) > 0 {
				e.stack = e.stack[:len(e.stack)-1]
			}
			return ast.WalkContinue, nil
		}
		e.visit(n)
		e.stack = append(e.stack, n)
		return ast.WalkContinue, nil
	})
}

func (e *extractor) visit(n ast.Node) {
	switch n.Kind() {
	case ast.KindHeading:
		e.heading(n.(*ast.Heading))
	case ast.KindEmphasis:
		e.emphasis(n.(*ast.Emphasis))
	case east.KindStrikethrough:
		e.strikethrough(n)
	case ast.KindCodeSpan:
		e.codeSpan(n)
	case ast.KindFencedCodeBlock:
		e.fencedCode(n.(*ast.FencedCodeBlock))
	case ast.KindLink:
		e.link(n.(*ast.Link))
	case ast.KindImage:
		e.image(n.(*ast.Image))
	case ast.KindBlockquote:
		e.blockquote(n)
	case ast.KindListItem:
		e.listItem(n)
	case ast.KindThematicBreak:
		e.thematicBreak(n)
	}
}

// emit appends a range after validating the non-zero-width and bounds
// invariants. An invalid single range is dropped, never the whole pass.
func (e *extractor) emit(r decoration.Range) {
	if r.Start < 0 || r.Start >= r.End || r.End > len(e.src) {
		return
	}
	e.ranges = append(e.ranges, r)
}

func (e *extractor) hide(start, end int) {
	e.emit(decoration.Range{Start: start, End: end, Kind: decoration.Hide})
}

// --- position helpers -------------------------------------------------------

// lineStart returns the offset of the first byte of the line containing pos.
func (e *extractor) lineStart(pos int) int {
	if pos > len(e.src) {
		pos = len(e.src)
	}
	return bytes.LastIndexByte(e.src[:pos], '\n') + 1
}

// lineEnd returns the offset of the '\n' terminating the line containing
// pos, or len(src) when the line is unterminated.
func (e *extractor) lineEnd(pos int) int {
	if pos >= len(e.src) {
		return len(e.src)
	}
	if i := bytes.IndexByte(e.src[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(e.src)
}

// contentExtent returns the raw source interval covered by n's inline
// children, nested markers included. ok is false when no descendant carries
// position information; callers skip the node in that case.
func (e *extractor) contentExtent(n ast.Node) span {
	s := span{start: len(e.src)}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		ce := e.markedExtent(c)
		if !ce.ok {
			continue
		}
		if ce.start < s.start {
			s.start = ce.start
		}
		if ce.end > s.end {
			s.end = ce.end
		}
		s.ok = true
	}
	return s
}

// markedExtent returns the interval of a node including its own syntax
// markers, memoized for the duration of the pass.
func (e *extractor) markedExtent(n ast.Node) span {
	if s, ok := e.extents[n]; ok {
		return s
	}
	s := e.computeMarkedExtent(n)
	e.extents[n] = s
	return s
}

func (e *extractor) computeMarkedExtent(n ast.Node) span {
	switch t := n.(type) {
	case *ast.Text:
		return span{start: t.Segment.Start, end: t.Segment.Stop, ok: true}
	case *ast.Emphasis:
		inner := e.contentExtent(t)
		if !inner.ok {
			return span{}
		}
		return span{start: inner.start - t.Level, end: inner.end + t.Level, ok: true}
	case *east.Strikethrough:
		inner := e.contentExtent(t)
		if !inner.ok {
			return span{}
		}
		return span{start: inner.start - 2, end: inner.end + 2, ok: true}
	case *ast.CodeSpan:
		inner := e.contentExtent(t)
		if !inner.ok {
			return span{}
		}
		open := e.backtickRunBefore(inner.start)
		close := e.backtickRunAfter(inner.end)
		return span{start: open, end: close, ok: true}
	case *ast.Link:
		return e.bracketedExtent(t, 1)
	case *ast.Image:
		return e.bracketedExtent(t, 2)
	default:
		return e.contentExtent(n)
	}
}

// bracketedExtent covers "[text](url)" or "![alt](url)"; lead is the length
// of the opening delimiter ("[" or "![").
func (e *extractor) bracketedExtent(n ast.Node, lead int) span {
	inner := e.contentExtent(n)
	if !inner.ok {
		return span{}
	}
	s := span{start: inner.start - lead, end: inner.end, ok: true}
	end := inner.end
	if end < len(e.src) && e.src[end] == ']' {
		end++
		if end < len(e.src) && e.src[end] == '(' {
			if i := bytes.IndexByte(e.src[end:], ')'); i >= 0 {
				end += i + 1
			}
		}
	}
	s.end = end
	return s
}

// backtickRunBefore walks left from pos over an optional padding space and
// the backtick run, returning the run's first offset.
func (e *extractor) backtickRunBefore(pos int) int {
	i := pos
	if i > 0 && e.src[i-1] == ' ' && i > 1 && e.src[i-2] == '`' {
		i--
	}
	for i > 0 && e.src[i-1] == '`' {
		i--
	}
	return i
}

func (e *extractor) backtickRunAfter(pos int) int {
	i := pos
	if i < len(e.src) && e.src[i] == ' ' && i+1 < len(e.src) && e.src[i+1] == '`' {
		i++
	}
	for i < len(e.src) && e.src[i] == '`' {
		i++
	}
	return i
}

// nodeSpan returns the raw interval covered by a block node and all of its
// descendants, derived from line segments and text segments.
func (e *extractor) nodeSpan(n ast.Node) span {
	s := span{start: len(e.src)}
	merge := func(start, stop int) {
		if start < s.start {
			s.start = start
		}
		if stop > s.end {
			s.end = stop
		}
		s.ok = true
	}
	if t, ok := n.(*ast.Text); ok {
		merge(t.Segment.Start, t.Segment.Stop)
	}
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			merge(lines.At(0).Start, lines.At(lines.Len()-1).Stop)
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if cs := e.nodeSpan(c); cs.ok {
			merge(cs.start, cs.end)
		}
	}
	return s
}

func (e *extractor) hasAncestor(match func(ast.Node) bool) bool {
	for i := len(e.stack) - 1; i >= 0; i-- {
		if match(e.stack[i]) {
			return true
		}
	}
	return false
}

func emphasisAncestor(level int) func(ast.Node) bool {
	return func(n ast.Node) bool {
		em, ok := n.(*ast.Emphasis)
		return ok && em.Level == level
	}
}

// --- handlers ---------------------------------------------------------------

// heading hides the '#' run together with the whitespace that follows it.
// Hiding the hashes alone would leave the space to visually swallow the
// heading's first character once the marker glyph disappears.
func (e *extractor) heading(n *ast.Heading) {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return
	}
	start := e.lineStart(lines.At(0).Start)

	// Recompute the level from the raw '#' run; the grammar's depth field is
	// not trusted.
	pos := start
	for pos < len(e.src) && (e.src[pos] == ' ' || e.src[pos] == '\t') {
		pos++
	}
	markerStart := pos
	for pos < len(e.src) && e.src[pos] == '#' {
		pos++
	}
	level := pos - markerStart
	hideEnd := pos
	for hideEnd < len(e.src) && (e.src[hideEnd] == ' ' || e.src[hideEnd] == '\t') {
		hideEnd++
	}

	contentEnd := lines.At(lines.Len() - 1).Stop
	for contentEnd > hideEnd && isSpace(e.src[contentEnd-1]) {
		contentEnd--
	}

	if level == 0 {
		// Setext heading: no marker line to hide, style the content only.
		level = n.Level
		if start < contentEnd {
			e.emit(decoration.Range{Start: start, End: contentEnd, Kind: decoration.HeadingKind(level), Level: level})
			e.emit(decoration.Range{Start: start, End: contentEnd, Kind: decoration.Heading, Level: level})
		}
		return
	}
	if level > 6 {
		level = 6
	}

	e.hide(start, hideEnd)
	if hideEnd < contentEnd {
		e.emit(decoration.Range{Start: hideEnd, End: contentEnd, Kind: decoration.HeadingKind(level), Level: level})
		e.emit(decoration.Range{Start: hideEnd, End: contentEnd, Kind: decoration.Heading, Level: level})
	}
}

func (e *extractor) emphasis(n *ast.Emphasis) {
	if _, done := e.consumed[n]; done {
		return
	}
	inner := e.contentExtent(n)
	if !inner.ok {
		return
	}
	cs, ce := inner.start, inner.end

	if n.Level == 2 {
		// Strong: detect the 2-character marker actually used.
		if cs < 2 || ce+2 > len(e.src) {
			return
		}
		m := e.src[cs-2]
		if (m != '*' && m != '_') || e.src[cs-1] != m || e.src[ce] != m || e.src[ce+1] != m {
			return
		}
		kind := decoration.Bold
		if e.hasAncestor(emphasisAncestor(1)) {
			kind = decoration.BoldItalic
		}
		e.hide(cs-2, cs)
		e.emit(decoration.Range{Start: cs, End: ce, Kind: kind})
		e.hide(ce, ce+2)
		return
	}

	if cs < 1 || ce+1 > len(e.src) {
		return
	}
	m := e.src[cs-1]
	if (m != '*' && m != '_') || e.src[ce] != m {
		return
	}

	// Triple-marker case (***text***): when this node's sole child is a
	// strong whose markers sit flush inside ours, one boldItalic decoration
	// covers the whole span and the child must not re-hide its markers.
	if strong := soleStrongChild(n); strong != nil {
		si := e.contentExtent(strong)
		if si.ok && si.start == cs+2 && si.end == ce-2 &&
			e.src[cs] == m && e.src[cs+1] == m {
			e.hide(cs-1, cs+2)
			e.emit(decoration.Range{Start: cs + 2, End: ce - 2, Kind: decoration.BoldItalic})
			e.hide(ce-2, ce+1)
			e.consumed[strong] = struct{}{}
			return
		}
	}

	kind := decoration.Italic
	if e.hasAncestor(emphasisAncestor(2)) {
		kind = decoration.BoldItalic
	}
	e.hide(cs-1, cs)
	e.emit(decoration.Range{Start: cs, End: ce, Kind: kind})
	e.hide(ce, ce+1)
}

func soleStrongChild(n *ast.Emphasis) *ast.Emphasis {
	c := n.FirstChild()
	if c == nil || c.NextSibling() != nil {
		return nil
	}
	strong, ok := c.(*ast.Emphasis)
	if !ok || strong.Level != 2 {
		return nil
	}
	return strong
}

func (e *extractor) strikethrough(n ast.Node) {
	inner := e.contentExtent(n)
	if !inner.ok {
		return
	}
	cs, ce := inner.start, inner.end
	if cs < 2 || ce+2 > len(e.src) {
		return
	}
	if e.src[cs-2] != '~' || e.src[cs-1] != '~' || e.src[ce] != '~' || e.src[ce+1] != '~' {
		return
	}
	e.hide(cs-2, cs)
	e.emit(decoration.Range{Start: cs, End: ce, Kind: decoration.Strikethrough})
	e.hide(ce, ce+2)
}

func (e *extractor) codeSpan(n ast.Node) {
	inner := e.contentExtent(n)
	if !inner.ok {
		return
	}
	cs, ce := inner.start, inner.end
	open := e.backtickRunBefore(cs)
	close := e.backtickRunAfter(ce)
	if open == cs || close == ce {
		return // no marker found, nothing safe to emit
	}
	e.hide(open, cs)
	e.emit(decoration.Range{Start: cs, End: ce, Kind: decoration.Code})
	e.hide(ce, close)
}

// fencedCode emits a background range over the whole block, fences included,
// plus hide ranges over both fence lines. The grammar's inner-content span
// excludes the fence lines, so the fences are located in the raw text.
func (e *extractor) fencedCode(n *ast.FencedCodeBlock) {
	lines := n.Lines()

	var openStart, openEnd int // opening fence line, newline included
	var contentStop int

	switch {
	case lines != nil && lines.Len() > 0:
		first := lines.At(0).Start
		openEnd = first
		openStart = e.lineStart(first - 1)
		contentStop = lines.At(lines.Len() - 1).Stop
	case n.Info != nil:
		openStart = e.lineStart(n.Info.Segment.Start)
		openEnd = e.lineEnd(openStart)
		if openEnd < len(e.src) {
			openEnd++ // include the newline
		}
		contentStop = openEnd
	default:
		return // empty block with no info string, no anchor to locate it
	}

	fenceIdx := skipIndent(e.src, openStart)
	if fenceIdx >= len(e.src) {
		return
	}
	fence := e.src[fenceIdx]
	if fence != '`' && fence != '~' {
		return
	}

	// The closing fence, when present, is the line right after the content.
	closeStart := contentStop
	closed := false
	var closeEnd int
	if closeStart < len(e.src) {
		tok := skipIndent(e.src, closeStart)
		if tok < len(e.src) && e.src[tok] == fence {
			closed = true
			closeEnd = e.lineEnd(closeStart)
		}
	}

	if closed {
		e.emit(decoration.Range{Start: openStart, End: closeEnd, Kind: decoration.CodeBlock})
		e.hide(openStart, openEnd)
		hideEnd := closeEnd
		if hideEnd < len(e.src) && e.src[hideEnd] == '\n' {
			hideEnd++
		}
		e.hide(closeStart, hideEnd)
		return
	}

	blockEnd := contentStop
	if blockEnd > openStart && blockEnd <= len(e.src) && blockEnd > 0 && e.src[blockEnd-1] == '\n' {
		blockEnd--
	}
	e.emit(decoration.Range{Start: openStart, End: blockEnd, Kind: decoration.CodeBlock})
	e.hide(openStart, openEnd)
}

func skipIndent(src []byte, pos int) int {
	for pos < len(src) && src[pos] == ' ' {
		pos++
	}
	return pos
}

func (e *extractor) link(n *ast.Link) {
	inner := e.contentExtent(n)
	if !inner.ok {
		return // empty link text carries no locatable position
	}
	ts, te := inner.start, inner.end
	if ts < 1 || e.src[ts-1] != '[' || te >= len(e.src) || e.src[te] != ']' {
		return
	}
	e.hide(ts-1, ts)
	if ts < te {
		e.emit(decoration.Range{Start: ts, End: te, Kind: decoration.Link, URL: string(n.Destination)})
	}
	e.hide(te, te+1)
	e.hideURLSuffix(te + 1)
}

// image decorates "![alt](url)". An empty alt emits no content range;
// zero-width ranges are never emitted, here or anywhere else.
func (e *extractor) image(n *ast.Image) {
	inner := e.contentExtent(n)
	if !inner.ok {
		return // degenerate ![] forms are caught by the post-pass scanner
	}
	ts, te := inner.start, inner.end
	if ts < 2 || e.src[ts-2] != '!' || e.src[ts-1] != '[' || te >= len(e.src) || e.src[te] != ']' {
		return
	}
	e.hide(ts-2, ts)
	if ts < te {
		e.emit(decoration.Range{Start: ts, End: te, Kind: decoration.Image, URL: string(n.Destination)})
	}
	e.hide(te, te+1)
	e.hideURLSuffix(te + 1)
}

// hideURLSuffix hides a "(url)" group starting at pos, if present.
func (e *extractor) hideURLSuffix(pos int) {
	if pos >= len(e.src) || e.src[pos] != '(' {
		return
	}
	rel := bytes.IndexByte(e.src[pos:], ')')
	if rel < 0 {
		return
	}
	cp := pos + rel
	e.hide(pos, pos+1)
	if pos+1 < cp {
		e.hide(pos+1, cp)
	}
	e.hide(cp, cp+1)
}

// blockquote gives every '>' marker its own single-character range, one per
// nesting level. The processed set spans the whole pass so an outer quote
// and a nested quote visiting the same line never decorate a '>' twice.
func (e *extractor) blockquote(n ast.Node) {
	s := e.nodeSpan(n)
	if !s.ok {
		return
	}
	for ls := e.lineStart(s.start); ls < s.end; {
		for p := ls; p < len(e.src); p++ {
			c := e.src[p]
			if c == ' ' || c == '\t' {
				continue
			}
			if c != '>' {
				break
			}
			if _, done := e.processed[p]; !done {
				e.processed[p] = struct{}{}
				e.emit(decoration.Range{Start: p, End: p + 1, Kind: decoration.Blockquote})
			}
		}
		le := e.lineEnd(ls)
		if le >= len(e.src) {
			break
		}
		ls = le + 1
	}
}

func (e *extractor) listItem(n ast.Node) {
	s := e.nodeSpan(n)
	if !s.ok {
		return
	}
	ls := e.lineStart(s.start)
	pos := ls
	for pos < s.start && (e.src[pos] == ' ' || e.src[pos] == '\t') {
		pos++
	}
	if pos >= len(e.src) {
		return
	}
	m := e.src[pos]
	if m != '-' && m != '*' && m != '+' {
		return // ordered items carry no bullet to decorate
	}
	markerEnd := pos + 1
	if markerEnd < len(e.src) && e.src[markerEnd] == ' ' {
		markerEnd++
	}
	e.emit(decoration.Range{Start: pos, End: markerEnd, Kind: decoration.ListItem})

	if markerEnd+3 <= len(e.src) {
		switch string(e.src[markerEnd : markerEnd+3]) {
		case "[ ]":
			e.emit(decoration.Range{Start: markerEnd, End: markerEnd + 3, Kind: decoration.CheckboxUnchecked})
		case "[x]", "[X]":
			e.emit(decoration.Range{Start: markerEnd, End: markerEnd + 3, Kind: decoration.CheckboxChecked})
		}
	}
}

// thematicBreak locates the break line in the raw text: the grammar reports
// no position for it. The search window is bounded by the surrounding
// siblings' spans and a monotonic cursor so consecutive breaks each match
// their own line; the cursor always sits on the line after the last match,
// which keeps a break whose previous sibling is another (positionless) break
// from re-matching the consumed line.
//
// A break nested in blockquotes matches its line through the '>' prefix and
// decorates those markers itself: when the break is the quote's only child
// the quote carries no position at all and the blockquote handler never saw
// the line.
func (e *extractor) thematicBreak(n ast.Node) {
	from := e.hrCursor
	if prev := n.PreviousSibling(); prev != nil {
		if ps := e.nodeSpan(prev); ps.ok && ps.end > from {
			from = ps.end
		}
		// A setext heading's underline sits after its content span and would
		// match the '-' pattern; step past it.
		if h, ok := prev.(*ast.Heading); ok && e.isSetext(h) {
			le := e.lineEnd(e.lineStart(from))
			if le < len(e.src) {
				from = le + 1
			}
		}
	}
	to := len(e.src)
	if next := n.NextSibling(); next != nil {
		if ns := e.nodeSpan(next); ns.ok && ns.start < to {
			to = ns.start
		}
	}

	depth := e.quoteDepth()
	ls := e.lineStart(from)
	if ls < e.hrCursor {
		ls = e.hrCursor
	}
	for ls < to {
		le := e.lineEnd(ls)
		tok := 0
		var markers []int
		if depth > 0 {
			tok, markers = stripQuotePrefix(e.src[ls:le], depth)
		}
		if depth == 0 || len(markers) > 0 {
			if tokStart, tokEnd, ok := breakToken(e.src[ls+tok : le]); ok {
				for _, p := range markers {
					mp := ls + p
					if _, done := e.processed[mp]; !done {
						e.processed[mp] = struct{}{}
						e.emit(decoration.Range{Start: mp, End: mp + 1, Kind: decoration.Blockquote})
					}
				}
				e.emit(decoration.Range{Start: ls + tok + tokStart, End: ls + tok + tokEnd, Kind: decoration.HorizontalRule})
				e.hrCursor = le + 1
				if e.hrCursor > len(e.src) {
					e.hrCursor = len(e.src)
				}
				return
			}
		}
		if le >= len(e.src) {
			return
		}
		ls = le + 1
	}
}

// quoteDepth counts the blockquote ancestors of the node being visited.
func (e *extractor) quoteDepth() int {
	d := 0
	for _, a := range e.stack {
		if a.Kind() == ast.KindBlockquote {
			d++
		}
	}
	return d
}

// stripQuotePrefix consumes up to depth '>' markers (each with optional
// leading whitespace and one trailing space) from the front of line. It
// returns the offset of the remaining content and the offsets of the
// markers consumed.
func stripQuotePrefix(line []byte, depth int) (int, []int) {
	i := 0
	var markers []int
	for len(markers) < depth {
		j := i
		for j < len(line) && (line[j] == ' ' || line[j] == '\t') {
			j++
		}
		if j >= len(line) || line[j] != '>' {
			break
		}
		markers = append(markers, j)
		i = j + 1
		if i < len(line) && line[i] == ' ' {
			i++
		}
	}
	return i, markers
}

func (e *extractor) isSetext(h *ast.Heading) bool {
	lines := h.Lines()
	if lines == nil || lines.Len() == 0 {
		return false
	}
	pos := e.lineStart(lines.At(0).Start)
	for pos < len(e.src) && (e.src[pos] == ' ' || e.src[pos] == '\t') {
		pos++
	}
	return pos >= len(e.src) || e.src[pos] != '#'
}

// breakToken reports whether line is a thematic break ("---", "***", "___",
// spaces allowed between markers) and returns the token bounds within it.
func breakToken(line []byte) (int, int, bool) {
	i := 0
	for i < len(line) && line[i] == ' ' && i < 3 {
		i++
	}
	if i >= len(line) {
		return 0, 0, false
	}
	m := line[i]
	if m != '-' && m != '*' && m != '_' {
		return 0, 0, false
	}
	start := i
	count := 0
	end := i
	for ; i < len(line); i++ {
		switch line[i] {
		case m:
			count++
			end = i + 1
		case ' ', '\t':
		default:
			return 0, 0, false
		}
	}
	if count < 3 {
		return 0, 0, false
	}
	return start, end, true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
