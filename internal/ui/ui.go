// Package ui implements the terminal viewer/editor hosting the decoration
// engine. The model owns the document buffer, feeds content and selection
// events to the engine, and renders whatever decoration set the engine last
// published. The cursor line always shows raw markdown: the selection filter
// suppresses every decoration on it.
package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/inkdown/internal/config"
	"github.com/zjrosen/inkdown/internal/decoration"
	"github.com/zjrosen/inkdown/internal/engine"
	"github.com/zjrosen/inkdown/internal/filter"
	"github.com/zjrosen/inkdown/internal/log"
	"github.com/zjrosen/inkdown/internal/pubsub"
)

// docStore is the DocumentProvider handed to the engine. The engine reads it
// from timer goroutines while the update loop mutates it, so access is
// serialized here.
type docStore struct {
	mu      sync.Mutex
	text    string
	version int
}

func (d *docStore) Text(string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}

func (d *docStore) Version(string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version
}

func (d *docStore) set(text string, version int) {
	d.mu.Lock()
	d.text = text
	d.version = version
	d.mu.Unlock()
}

type reloadMsg struct{}

// Model is the bubbletea model for the viewer.
type Model struct {
	path  string
	docID string

	lines   []string
	version int
	dirty   bool

	cursorLine int
	cursorCol  int // rune index within the line
	offset     int // first visible line
	width      int
	height     int

	store    *docStore
	eng      *engine.Engine
	listener *pubsub.Listener[engine.Update]
	cancel   context.CancelFunc
	decs     decoration.Set

	styles     Styles
	keymap     KeyMap
	showStatus bool
	status     string

	reload <-chan struct{} // nil when auto-reload is off
}

// New loads the file at path and builds the model. The returned model owns
// the engine; Close it (or quit the program) to release timers.
func New(cfg config.Config, path string, reload <-chan struct{}) (*Model, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the user's own document
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	m := &Model{
		path:       path,
		docID:      path,
		lines:      strings.Split(string(data), "\n"),
		version:    1,
		styles:     NewStyles(cfg.Theme),
		keymap:     DefaultKeyMap(),
		showStatus: cfg.UI.ShowStatusBar,
		width:      80,
		height:     24,
		reload:     reload,
	}

	store := &docStore{text: string(data), version: 1}
	m.store = store
	m.eng = engine.New(store, nil, engine.Config{
		DebounceDelay: cfg.Debounce(),
		CacheCapacity: cfg.CacheCapacity,
	})

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.listener = pubsub.NewListener(ctx, m.eng.Updates())
	return m, nil
}

// Init kicks off the update listener and requests the initial decoration
// set through the selection path (synchronous on cache miss, so the first
// paint is already decorated).
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.listener.Listen(),
		m.selectionCmd(),
	}
	if m.reload != nil {
		cmds = append(cmds, m.reloadCmd())
	}
	return tea.Batch(cmds...)
}

func (m *Model) reloadCmd() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-m.reload; !ok {
			return nil
		}
		return reloadMsg{}
	}
}

func (m *Model) selectionCmd() tea.Cmd {
	// The filter works in byte offsets; the cursor column is a rune index.
	col := runeOffset(m.currentLine(), m.cursorCol)
	sel := []filter.Selection{{
		StartLine: m.cursorLine, StartChar: col,
		EndLine: m.cursorLine, EndChar: col,
	}}
	docID := m.docID
	eng := m.eng
	return func() tea.Msg {
		eng.SelectionChanged(docID, sel)
		return nil
	}
}

func (m *Model) contentCmd() tea.Cmd {
	docID := m.docID
	eng := m.eng
	return func() tea.Msg {
		eng.ContentChanged(docID)
		return nil
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case pubsub.Event[engine.Update]:
		m.decs = msg.Payload.Decorations
		return m, m.listener.Listen()

	case reloadMsg:
		cmd := m.handleReload()
		return m, tea.Batch(cmd, m.reloadCmd())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keymap
	switch {
	case key.Matches(msg, km.Quit):
		m.cancel()
		m.eng.Close()
		return m, tea.Quit

	case key.Matches(msg, km.Up):
		m.moveCursor(m.cursorLine-1, m.cursorCol)
		return m, m.selectionCmd()
	case key.Matches(msg, km.Down):
		m.moveCursor(m.cursorLine+1, m.cursorCol)
		return m, m.selectionCmd()
	case key.Matches(msg, km.Left):
		m.moveCursor(m.cursorLine, m.cursorCol-1)
		return m, m.selectionCmd()
	case key.Matches(msg, km.Right):
		m.moveCursor(m.cursorLine, m.cursorCol+1)
		return m, m.selectionCmd()
	case key.Matches(msg, km.Home):
		m.moveCursor(m.cursorLine, 0)
		return m, m.selectionCmd()
	case key.Matches(msg, km.End):
		m.moveCursor(m.cursorLine, utf8.RuneCountInString(m.currentLine()))
		return m, m.selectionCmd()

	case key.Matches(msg, km.Save):
		return m, m.save()
	}

	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		text := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			text = " "
		}
		m.insert(text)
		return m, tea.Batch(m.contentCmd(), m.selectionCmd())
	case tea.KeyEnter:
		m.splitLine()
		return m, tea.Batch(m.contentCmd(), m.selectionCmd())
	case tea.KeyBackspace:
		m.backspace()
		return m, tea.Batch(m.contentCmd(), m.selectionCmd())
	}
	return m, nil
}

// --- buffer edits ------------------------------------------------------------

func (m *Model) currentLine() string {
	if m.cursorLine >= len(m.lines) {
		return ""
	}
	return m.lines[m.cursorLine]
}

func (m *Model) moveCursor(line, col int) {
	if line < 0 {
		line = 0
	}
	if line > len(m.lines)-1 {
		line = len(m.lines) - 1
	}
	m.cursorLine = line
	if col < 0 {
		col = 0
	}
	if n := utf8.RuneCountInString(m.lines[line]); col > n {
		col = n
	}
	m.cursorCol = col
	m.scrollIntoView()
}

// runeOffset returns the byte offset of rune index col within line, clamped
// to the line's end.
func runeOffset(line string, col int) int {
	for i := range line {
		if col == 0 {
			return i
		}
		col--
	}
	return len(line)
}

func (m *Model) scrollIntoView() {
	visible := m.contentHeight()
	if m.cursorLine < m.offset {
		m.offset = m.cursorLine
	}
	if m.cursorLine >= m.offset+visible {
		m.offset = m.cursorLine - visible + 1
	}
}

func (m *Model) contentHeight() int {
	h := m.height
	if m.showStatus {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) insert(text string) {
	line := m.currentLine()
	at := runeOffset(line, m.cursorCol)
	m.lines[m.cursorLine] = line[:at] + text + line[at:]
	m.cursorCol += utf8.RuneCountInString(text)
	m.bumpVersion()
}

func (m *Model) splitLine() {
	line := m.currentLine()
	at := runeOffset(line, m.cursorCol)
	head, tail := line[:at], line[at:]
	m.lines[m.cursorLine] = head
	rest := append([]string{tail}, m.lines[m.cursorLine+1:]...)
	m.lines = append(m.lines[:m.cursorLine+1], rest...)
	m.cursorLine++
	m.cursorCol = 0
	m.scrollIntoView()
	m.bumpVersion()
}

func (m *Model) backspace() {
	if m.cursorCol > 0 {
		line := m.currentLine()
		start := runeOffset(line, m.cursorCol-1)
		end := runeOffset(line, m.cursorCol)
		m.lines[m.cursorLine] = line[:start] + line[end:]
		m.cursorCol--
		m.bumpVersion()
		return
	}
	if m.cursorLine == 0 {
		return
	}
	prev := m.lines[m.cursorLine-1]
	m.lines[m.cursorLine-1] = prev + m.currentLine()
	m.lines = append(m.lines[:m.cursorLine], m.lines[m.cursorLine+1:]...)
	m.cursorLine--
	m.cursorCol = utf8.RuneCountInString(prev)
	m.scrollIntoView()
	m.bumpVersion()
}

func (m *Model) bumpVersion() {
	m.version++
	m.dirty = true
	m.store.set(strings.Join(m.lines, "\n"), m.version)
}

func (m *Model) save() tea.Cmd {
	text := strings.Join(m.lines, "\n")
	if err := os.WriteFile(m.path, []byte(text), 0o644); err != nil {
		log.ErrorErr(log.CatUI, "save failed", err, "path", m.path)
		m.status = "save failed: " + err.Error()
		return nil
	}
	m.dirty = false
	m.status = "saved"
	return nil
}

func (m *Model) handleReload() tea.Cmd {
	if m.dirty {
		m.status = "file changed on disk (unsaved edits kept)"
		return nil
	}
	data, err := os.ReadFile(m.path) //nolint:gosec // G304: reloading the opened document
	if err != nil {
		log.ErrorErr(log.CatUI, "reload failed", err, "path", m.path)
		return nil
	}
	m.lines = strings.Split(string(data), "\n")
	m.moveCursor(m.cursorLine, m.cursorCol)
	m.version++
	m.store.set(string(data), m.version)
	m.status = "reloaded"
	return tea.Batch(m.contentCmd(), m.selectionCmd())
}

// --- view --------------------------------------------------------------------

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	starts := m.lineStarts()

	visible := m.contentHeight()
	for i := m.offset; i < m.offset+visible; i++ {
		if i > m.offset {
			b.WriteByte('\n')
		}
		if i >= len(m.lines) {
			continue
		}
		if i == m.cursorLine {
			b.WriteString(m.renderCursorLine(m.lines[i]))
			continue
		}
		b.WriteString(renderLine(m.lines[i], starts[i], m.decs, m.styles, m.width))
	}

	if m.showStatus {
		b.WriteByte('\n')
		b.WriteString(m.statusBar())
	}
	return b.String()
}

// renderCursorLine shows the raw line (the filter already revealed it) with
// a block cursor.
func (m *Model) renderCursorLine(line string) string {
	at := runeOffset(line, m.cursorCol)
	if at >= len(line) {
		return line + m.styles.Cursor.Render(" ")
	}
	_, size := utf8.DecodeRuneInString(line[at:])
	return line[:at] + m.styles.Cursor.Render(line[at:at+size]) + line[at+size:]
}

func (m *Model) statusBar() string {
	name := m.path
	if m.dirty {
		name += " [+]"
	}
	left := fmt.Sprintf(" %s  v%d  %d:%d", name, m.version, m.cursorLine+1, m.cursorCol+1)
	if m.status != "" {
		left += "  " + m.status
	}
	bar := runewidth.Truncate(left, m.width, "…")
	pad := m.width - runewidth.StringWidth(bar)
	if pad > 0 {
		bar += strings.Repeat(" ", pad)
	}
	return m.styles.StatusBar.Render(bar)
}

// lineStarts returns each line's byte offset in the joined document text.
func (m *Model) lineStarts() []int {
	starts := make([]int, len(m.lines))
	off := 0
	for i, l := range m.lines {
		starts[i] = off
		off += len(l) + 1
	}
	return starts
}
