package decoration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeadingKind(t *testing.T) {
	require.Equal(t, Heading1, HeadingKind(1))
	require.Equal(t, Heading3, HeadingKind(3))
	require.Equal(t, Heading6, HeadingKind(6))
}

func TestHeadingKind_ClampsOutOfRange(t *testing.T) {
	require.Equal(t, Heading1, HeadingKind(0))
	require.Equal(t, Heading1, HeadingKind(-4))
	require.Equal(t, Heading6, HeadingKind(7))
}

func TestRange_Contains(t *testing.T) {
	r := Range{Start: 2, End: 5, Kind: Bold}
	require.False(t, r.Contains(1))
	require.True(t, r.Contains(2))
	require.True(t, r.Contains(4))
	require.False(t, r.Contains(5), "End is exclusive")
}

func TestSortStable_OrdersByStart(t *testing.T) {
	ranges := []Range{
		{Start: 6, End: 8, Kind: Hide},
		{Start: 0, End: 2, Kind: Hide},
		{Start: 2, End: 6, Kind: Bold},
	}
	SortStable(ranges)
	require.Equal(t, 0, ranges[0].Start)
	require.Equal(t, 2, ranges[1].Start)
	require.Equal(t, 6, ranges[2].Start)
}

func TestSortStable_KeepsInsertionOrderOnTies(t *testing.T) {
	ranges := []Range{
		{Start: 2, End: 4, Kind: Heading1},
		{Start: 2, End: 4, Kind: Heading},
		{Start: 0, End: 2, Kind: Hide},
	}
	SortStable(ranges)
	require.Equal(t, Hide, ranges[0].Kind)
	require.Equal(t, Heading1, ranges[1].Kind, "equal starts keep insertion order")
	require.Equal(t, Heading, ranges[2].Kind)
}

func TestGroup(t *testing.T) {
	ranges := []Range{
		{Start: 0, End: 2, Kind: Hide},
		{Start: 2, End: 6, Kind: Bold},
		{Start: 6, End: 8, Kind: Hide},
	}
	set := Group(ranges)
	require.Len(t, set, 2)
	require.Len(t, set[Hide], 2)
	require.Len(t, set[Bold], 1)
	require.Equal(t, 0, set[Hide][0].Start, "per-kind slices keep input order")
	require.Equal(t, 6, set[Hide][1].Start)
}

func TestGroup_Empty(t *testing.T) {
	require.Empty(t, Group(nil))
}
