// Package cachemanager stores the last computed decoration list per open
// document, keyed by document identity and validated against the document
// version. Staleness is detected by exact version comparison, never by time;
// recency for eviction uses a monotonic logical clock, never wall-clock.
package cachemanager

import "github.com/zjrosen/inkdown/internal/decoration"

// DefaultCapacity is the number of documents tracked before LRU eviction.
const DefaultCapacity = 10

// Manager is the decoration cache seam between the scheduler and the
// extractor.
type Manager interface {
	// Get returns the decorations and the raw text they were computed from.
	// It is a hit only when a stored entry exists and its version equals
	// version exactly; any mismatch, including a version going backward,
	// is a miss.
	Get(docID string, version int) ([]decoration.Range, string, bool)

	// Put stores decorations for docID, replacing any previous entry for the
	// same document in place. Under capacity pressure the least recently
	// used entry is evicted first.
	Put(docID string, version int, decorations []decoration.Range, text string)

	// Invalidate drops the entry for docID, if any.
	Invalidate(docID string)

	// InvalidateAll drops every entry.
	InvalidateAll()

	// Len reports the number of tracked documents.
	Len() int
}
