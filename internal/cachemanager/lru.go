package cachemanager

import (
	"sync"

	"github.com/zjrosen/inkdown/internal/decoration"
	"github.com/zjrosen/inkdown/internal/log"
)

// entry is one cached extraction result. lastAccessed is a logical tick,
// bumped on every read and write, compared only for relative ordering.
type entry struct {
	version      int
	decorations  []decoration.Range
	text         string
	lastAccessed uint64
}

// LRUManager is the concrete Manager. The mutex serializes read-modify-write
// sequences: the cooperative scheduling model guarantees one logical flow per
// document, but timers fire on arbitrary goroutines in this host.
type LRUManager struct {
	mu       sync.Mutex
	capacity int
	clock    uint64
	entries  map[string]*entry
}

// NewLRUManager creates a cache bounded to capacity documents.
// Non-positive capacities fall back to DefaultCapacity.
func NewLRUManager(capacity int) *LRUManager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRUManager{
		capacity: capacity,
		entries:  make(map[string]*entry, capacity),
	}
}

func (m *LRUManager) Get(docID string, version int) ([]decoration.Range, string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[docID]
	if !ok || e.version != version {
		log.Debug(log.CatCache, "cache miss", "doc", docID, "version", version)
		return nil, "", false
	}

	m.clock++
	e.lastAccessed = m.clock
	log.Debug(log.CatCache, "cache hit", "doc", docID, "version", version)
	return e.decorations, e.text, true
}

func (m *LRUManager) Put(docID string, version int, decorations []decoration.Range, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clock++
	if e, ok := m.entries[docID]; ok {
		// Replace in place, no eviction needed.
		e.version = version
		e.decorations = decorations
		e.text = text
		e.lastAccessed = m.clock
		return
	}

	if len(m.entries) >= m.capacity {
		m.evictLocked()
	}
	m.entries[docID] = &entry{
		version:      version,
		decorations:  decorations,
		text:         text,
		lastAccessed: m.clock,
	}
}

// evictLocked removes the entry with the smallest logical access tick.
func (m *LRUManager) evictLocked() {
	var victim string
	var oldest uint64
	first := true
	for id, e := range m.entries {
		if first || e.lastAccessed < oldest {
			victim = id
			oldest = e.lastAccessed
			first = false
		}
	}
	if !first {
		delete(m.entries, victim)
		log.Debug(log.CatCache, "evicted least recently used entry", "doc", victim)
	}
}

func (m *LRUManager) Invalidate(docID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, docID)
}

func (m *LRUManager) InvalidateAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*entry, m.capacity)
}

func (m *LRUManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
