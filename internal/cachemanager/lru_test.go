package cachemanager

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/inkdown/internal/decoration"
)

func someRanges(start int) []decoration.Range {
	return []decoration.Range{{Start: start, End: start + 2, Kind: decoration.Bold}}
}

func TestLRUManager_MissOnEmptyCache(t *testing.T) {
	m := NewLRUManager(2)
	_, _, ok := m.Get("doc", 1)
	require.False(t, ok)
}

func TestLRUManager_HitOnExactVersion(t *testing.T) {
	m := NewLRUManager(2)
	m.Put("doc", 3, someRanges(0), "**ab**")

	ranges, text, ok := m.Get("doc", 3)
	require.True(t, ok)
	require.Equal(t, someRanges(0), ranges)
	require.Equal(t, "**ab**", text)
}

func TestLRUManager_VersionMismatchMisses(t *testing.T) {
	m := NewLRUManager(2)
	m.Put("doc", 3, someRanges(0), "text")

	_, _, ok := m.Get("doc", 4)
	require.False(t, ok, "newer version must miss")

	_, _, ok = m.Get("doc", 2)
	require.False(t, ok, "older version must miss too; only exact matches hit")
}

func TestLRUManager_ReplaceInPlace(t *testing.T) {
	m := NewLRUManager(1)
	m.Put("doc", 1, someRanges(0), "v1")
	m.Put("doc", 2, someRanges(4), "v2")

	require.Equal(t, 1, m.Len(), "same key replaces, never grows")
	ranges, text, ok := m.Get("doc", 2)
	require.True(t, ok)
	require.Equal(t, someRanges(4), ranges)
	require.Equal(t, "v2", text)
}

func TestLRUManager_EvictsLeastRecentlyUsed(t *testing.T) {
	m := NewLRUManager(2)
	m.Put("a", 1, someRanges(0), "a")
	m.Put("b", 1, someRanges(0), "b")

	// Touch "a" so "b" becomes the eviction victim.
	_, _, ok := m.Get("a", 1)
	require.True(t, ok)

	m.Put("c", 1, someRanges(0), "c")
	require.Equal(t, 2, m.Len())

	_, _, ok = m.Get("b", 1)
	require.False(t, ok, "b was least recently used and must be evicted")
	_, _, ok = m.Get("a", 1)
	require.True(t, ok)
	_, _, ok = m.Get("c", 1)
	require.True(t, ok)
}

func TestLRUManager_GetBumpsRecency(t *testing.T) {
	m := NewLRUManager(3)
	for i := 0; i < 3; i++ {
		m.Put(fmt.Sprintf("doc%d", i), 1, someRanges(0), "t")
	}
	// Re-read doc0 and doc1; doc2 is now the oldest access.
	m.Get("doc0", 1)
	m.Get("doc1", 1)

	m.Put("doc3", 1, someRanges(0), "t")
	_, _, ok := m.Get("doc2", 1)
	require.False(t, ok)
}

func TestLRUManager_Invalidate(t *testing.T) {
	m := NewLRUManager(2)
	m.Put("doc", 1, someRanges(0), "t")
	m.Invalidate("doc")

	_, _, ok := m.Get("doc", 1)
	require.False(t, ok)
	require.Equal(t, 0, m.Len())
}

func TestLRUManager_InvalidateUnknownIsNoop(t *testing.T) {
	m := NewLRUManager(2)
	m.Put("doc", 1, someRanges(0), "t")
	m.Invalidate("other")
	require.Equal(t, 1, m.Len())
}

func TestLRUManager_InvalidateAll(t *testing.T) {
	m := NewLRUManager(4)
	m.Put("a", 1, someRanges(0), "t")
	m.Put("b", 1, someRanges(0), "t")
	m.InvalidateAll()
	require.Equal(t, 0, m.Len())
}

func TestNewLRUManager_NonPositiveCapacityFallsBack(t *testing.T) {
	m := NewLRUManager(0)
	for i := 0; i <= DefaultCapacity; i++ {
		m.Put(fmt.Sprintf("doc%d", i), 1, someRanges(0), "t")
	}
	require.Equal(t, DefaultCapacity, m.Len())
}
