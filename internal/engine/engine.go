// Package engine wires the extractor, the decoration cache, and the
// selection filter behind the two events a host editor produces: content
// changes and selection changes.
//
// Content changes are debounced: the cache entry is invalidated immediately,
// and extraction runs only once the document has been quiet for the
// configured delay. A newer change supersedes any pending timer. Extraction
// always runs to completion once started; its result is discarded when the
// document version moved underneath it (checked right before the cache
// write). Selection changes bypass the debounce entirely and re-filter the
// cached ranges; a miss triggers a synchronous extraction, since the user is
// actively looking at the document and latency there is directly perceived.
package engine

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/inkdown/internal/cachemanager"
	"github.com/zjrosen/inkdown/internal/decoration"
	"github.com/zjrosen/inkdown/internal/extract"
	"github.com/zjrosen/inkdown/internal/filter"
	"github.com/zjrosen/inkdown/internal/log"
	"github.com/zjrosen/inkdown/internal/normalize"
	"github.com/zjrosen/inkdown/internal/pubsub"
)

// DocumentProvider is the inbound host seam: current text and a version
// integer bumped on every content mutation.
type DocumentProvider interface {
	Text(docID string) string
	Version(docID string) int
}

// Applier is the outbound host seam: one call carrying the full current
// range list per kind, not a diff.
type Applier interface {
	ApplyDecorations(docID string, decorations decoration.Set)
}

// Update is published on the engine's broker whenever decorations for a
// document are (re)applied.
type Update struct {
	DocID       string
	Version     int
	Decorations decoration.Set
}

// State is the scheduler state for one document.
type State int

const (
	StateIdle State = iota
	StatePendingDebounce
	StateExtracting
)

func (s State) String() string {
	switch s {
	case StatePendingDebounce:
		return "pending-debounce"
	case StateExtracting:
		return "extracting"
	default:
		return "idle"
	}
}

// Config holds engine tuning knobs.
type Config struct {
	DebounceDelay time.Duration
	CacheCapacity int
}

// DefaultConfig returns the delay and capacity used when the host does not
// override them.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 300 * time.Millisecond,
		CacheCapacity: cachemanager.DefaultCapacity,
	}
}

var tracer = otel.Tracer("inkdown/engine")

// Engine coordinates extraction, caching, filtering, and application for all
// open documents.
type Engine struct {
	cfg     Config
	docs    DocumentProvider
	applier Applier // optional; updates are always published on the broker
	cache   cachemanager.Manager
	broker  *pubsub.Broker[Update]

	mu         sync.Mutex
	timers     map[string]*time.Timer
	states     map[string]State
	selections map[string][]filter.Selection
	closed     bool
}

// New creates an engine reading documents from docs and pushing decorations
// to applier (which may be nil when the host consumes the broker instead).
func New(docs DocumentProvider, applier Applier, cfg Config) *Engine {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = DefaultConfig().DebounceDelay
	}
	return &Engine{
		cfg:        cfg,
		docs:       docs,
		applier:    applier,
		cache:      cachemanager.NewLRUManager(cfg.CacheCapacity),
		broker:     pubsub.NewBroker[Update](),
		timers:     make(map[string]*time.Timer),
		states:     make(map[string]State),
		selections: make(map[string][]filter.Selection),
	}
}

// Updates exposes the broker carrying decoration updates.
func (e *Engine) Updates() *pubsub.Broker[Update] {
	return e.broker
}

// State reports the scheduler state for a document.
func (e *Engine) State(docID string) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.states[docID]
}

// Cache exposes the underlying decoration cache (used by inspection paths
// and tests).
func (e *Engine) Cache() cachemanager.Manager {
	return e.cache
}

// ContentChanged invalidates the document's cache entry immediately and
// (re)starts the debounce timer. A not-yet-fired timer for the same document
// is superseded.
func (e *Engine) ContentChanged(docID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	e.cache.Invalidate(docID)
	if t, ok := e.timers[docID]; ok {
		t.Stop()
	}
	e.states[docID] = StatePendingDebounce

	var t *time.Timer
	t = time.AfterFunc(e.cfg.DebounceDelay, func() {
		e.debounceFired(docID, t)
	})
	e.timers[docID] = t
	log.Debug(log.CatEngine, "debounce scheduled", "doc", docID)
}

func (e *Engine) debounceFired(docID string, self *time.Timer) {
	e.mu.Lock()
	if e.closed || e.timers[docID] != self {
		// Superseded by a newer change (or shut down); the next timer
		// recomputes from current text.
		e.mu.Unlock()
		return
	}
	delete(e.timers, docID)
	e.states[docID] = StateExtracting
	e.mu.Unlock()

	e.extractAndApply(docID)

	e.mu.Lock()
	if e.states[docID] == StateExtracting {
		e.states[docID] = StateIdle
	}
	e.mu.Unlock()
}

// SelectionChanged re-derives the visible decoration subset for the new
// selection state. It never waits on the debounce: a cache hit is a pure
// O(selections x ranges) filter, a miss extracts synchronously.
func (e *Engine) SelectionChanged(docID string, selections []filter.Selection) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.selections[docID] = selections
	e.mu.Unlock()

	version := e.docs.Version(docID)
	ranges, text, hit := e.cache.Get(docID, version)
	if !hit {
		e.extractAndApply(docID)
		return
	}
	e.applyFiltered(docID, version, ranges, text)
}

// extractAndApply runs one full extraction pass and installs the result,
// unless the document version moved while the pass was running.
func (e *Engine) extractAndApply(docID string) {
	version := e.docs.Version(docID)
	text := e.docs.Text(docID)

	ctx, span := tracer.Start(context.Background(), "engine.extract")
	span.SetAttributes(attribute.String("doc.id", docID), attribute.Int("doc.version", version))

	normalized, _ := normalize.Normalize(text)
	ranges := extract.Ranges(normalized)

	span.SetAttributes(attribute.Int("decoration.count", len(ranges)))
	span.End()

	if e.docs.Version(docID) != version {
		log.Debug(log.CatEngine, "discarding stale extraction", "doc", docID, "version", version)
		return
	}
	e.cache.Put(docID, version, ranges, text)
	e.applyFilteredCtx(ctx, docID, version, ranges, text)
}

func (e *Engine) applyFiltered(docID string, version int, ranges []decoration.Range, text string) {
	e.applyFilteredCtx(context.Background(), docID, version, ranges, text)
}

func (e *Engine) applyFilteredCtx(ctx context.Context, docID string, version int, ranges []decoration.Range, text string) {
	e.mu.Lock()
	selections := e.selections[docID]
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return
	}

	_, span := tracer.Start(ctx, "engine.filter")
	set := filter.Apply(ranges, selections, text)
	span.SetAttributes(attribute.Int("decoration.kinds", len(set)))
	span.End()

	if e.applier != nil {
		e.applier.ApplyDecorations(docID, set)
	}
	e.broker.Publish(Update{DocID: docID, Version: version, Decorations: set})
}

// Close stops all pending timers and shuts the update broker down.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	for _, t := range e.timers {
		t.Stop()
	}
	e.timers = nil
	e.broker.Close()
}
