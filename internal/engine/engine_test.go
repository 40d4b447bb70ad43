package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/inkdown/internal/decoration"
	"github.com/zjrosen/inkdown/internal/filter"
)

// fakeProvider is a mutable in-memory document source.
type fakeProvider struct {
	mu        sync.Mutex
	text      string
	version   int
	textCalls int

	// bumpOnRead simulates an edit landing mid-extraction: every Text call
	// advances the version.
	bumpOnRead bool
}

func (p *fakeProvider) Text(string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.textCalls++
	if p.bumpOnRead {
		p.version++
	}
	return p.text
}

func (p *fakeProvider) Version(string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.version
}

func (p *fakeProvider) set(text string) {
	p.mu.Lock()
	p.text = text
	p.version++
	p.mu.Unlock()
}

func (p *fakeProvider) reads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.textCalls
}

// recordingApplier collects every decoration application.
type recordingApplier struct {
	mu      sync.Mutex
	updates []decoration.Set
}

func (a *recordingApplier) ApplyDecorations(_ string, set decoration.Set) {
	a.mu.Lock()
	a.updates = append(a.updates, set)
	a.mu.Unlock()
}

func (a *recordingApplier) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.updates)
}

func (a *recordingApplier) last() decoration.Set {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.updates) == 0 {
		return nil
	}
	return a.updates[len(a.updates)-1]
}

func newTestEngine(text string, delay time.Duration) (*Engine, *fakeProvider, *recordingApplier) {
	docs := &fakeProvider{text: text, version: 1}
	applier := &recordingApplier{}
	eng := New(docs, applier, Config{DebounceDelay: delay, CacheCapacity: 4})
	return eng, docs, applier
}

func TestEngine_SelectionChangedExtractsSynchronouslyOnMiss(t *testing.T) {
	eng, _, applier := newTestEngine("# Hello", time.Hour)
	defer eng.Close()

	eng.SelectionChanged("doc", []filter.Selection{{StartLine: 5, StartChar: 0, EndLine: 5, EndChar: 0}})

	require.Equal(t, 1, applier.count(), "a cache miss extracts before returning")
	set := applier.last()
	require.Len(t, set[decoration.Heading1], 1)
	require.Len(t, set[decoration.Hide], 1)
}

func TestEngine_SelectionChangedUsesCacheOnHit(t *testing.T) {
	eng, docs, applier := newTestEngine("**bold**", time.Hour)
	defer eng.Close()

	sel := []filter.Selection{{StartLine: 9, StartChar: 0, EndLine: 9, EndChar: 0}}
	eng.SelectionChanged("doc", sel)
	require.Equal(t, 1, docs.reads())

	eng.SelectionChanged("doc", sel)
	require.Equal(t, 1, docs.reads(), "a cache hit must not re-read the document")
	require.Equal(t, 2, applier.count(), "both calls apply decorations")
}

func TestEngine_CursorLineSuppressesDecorations(t *testing.T) {
	eng, _, applier := newTestEngine("**bold**", time.Hour)
	defer eng.Close()

	eng.SelectionChanged("doc", []filter.Selection{{}})

	set := applier.last()
	require.Empty(t, set, "every decoration sits on the cursor line")
}

func TestEngine_ContentChangedDebounces(t *testing.T) {
	eng, docs, applier := newTestEngine("start", 50*time.Millisecond)
	defer eng.Close()

	docs.set("# one")
	eng.ContentChanged("doc")
	time.Sleep(10 * time.Millisecond)
	docs.set("# two")
	eng.ContentChanged("doc")
	time.Sleep(10 * time.Millisecond)
	docs.set("# final heading")
	eng.ContentChanged("doc")

	require.Eventually(t, func() bool { return applier.count() > 0 },
		2*time.Second, 5*time.Millisecond)

	// Let any superseded timer that incorrectly survived fire.
	time.Sleep(150 * time.Millisecond)
	require.Equal(t, 1, applier.count(), "rapid edits coalesce into one extraction")

	set := applier.last()
	require.Len(t, set[decoration.Heading1], 1)
	require.Equal(t, 15, set[decoration.Heading1][0].End, "the final text is the one extracted")
}

func TestEngine_ContentChangedInvalidatesImmediately(t *testing.T) {
	eng, docs, _ := newTestEngine("# Hello", time.Hour)
	defer eng.Close()

	eng.SelectionChanged("doc", []filter.Selection{{StartLine: 5, EndLine: 5}})
	_, _, ok := eng.Cache().Get("doc", docs.Version("doc"))
	require.True(t, ok)

	eng.ContentChanged("doc")
	_, _, ok = eng.Cache().Get("doc", docs.Version("doc"))
	require.False(t, ok, "invalidation happens before the debounce elapses")
}

func TestEngine_StaleExtractionIsDiscarded(t *testing.T) {
	eng, docs, applier := newTestEngine("# Hello", time.Hour)
	defer eng.Close()
	docs.bumpOnRead = true

	eng.SelectionChanged("doc", []filter.Selection{{StartLine: 5, EndLine: 5}})

	require.Equal(t, 0, applier.count(), "version moved mid-extraction; result discarded")
	require.Equal(t, 0, eng.Cache().Len())
}

func TestEngine_StateTransitions(t *testing.T) {
	eng, _, applier := newTestEngine("# Hello", 30*time.Millisecond)
	defer eng.Close()

	require.Equal(t, StateIdle, eng.State("doc"))

	eng.ContentChanged("doc")
	require.Equal(t, StatePendingDebounce, eng.State("doc"))

	require.Eventually(t, func() bool { return applier.count() > 0 },
		2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return eng.State("doc") == StateIdle },
		2*time.Second, 5*time.Millisecond)
}

func TestEngine_UpdatesPublishedOnBroker(t *testing.T) {
	eng, _, _ := newTestEngine("# Hello", time.Hour)
	defer eng.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := eng.Updates().Subscribe(ctx)

	eng.SelectionChanged("doc", []filter.Selection{{StartLine: 5, EndLine: 5}})

	select {
	case ev := <-sub:
		require.Equal(t, "doc", ev.Payload.DocID)
		require.Equal(t, 1, ev.Payload.Version)
		require.Len(t, ev.Payload.Decorations[decoration.Heading], 1)
	case <-time.After(time.Second):
		t.Fatal("no update published")
	}
}

func TestEngine_CloseStopsPendingWork(t *testing.T) {
	eng, _, applier := newTestEngine("# Hello", 20*time.Millisecond)

	eng.ContentChanged("doc")
	eng.Close()
	eng.Close() // idempotent

	time.Sleep(80 * time.Millisecond)
	require.Equal(t, 0, applier.count(), "closing cancels the pending debounce")

	eng.ContentChanged("doc") // no-op after close, must not panic
	eng.SelectionChanged("doc", nil)
}

func TestState_String(t *testing.T) {
	require.Equal(t, "idle", StateIdle.String())
	require.Equal(t, "pending-debounce", StatePendingDebounce.String())
	require.Equal(t, "extracting", StateExtracting.String())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, 300*time.Millisecond, cfg.DebounceDelay)
	require.Equal(t, 10, cfg.CacheCapacity)
}
