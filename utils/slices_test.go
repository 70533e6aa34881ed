package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSortedKeys(t *testing.T) {
	m := map[int]int{1: 1, 3: 3, 2: 2}
	require.Equal(t, []int{1, 2, 3}, GetSortedKeys(m))
	m = map[int]int{-1: 1, -3: 3, -2: 2}
	require.Equal(t, []int{-3, -2, -1}, GetSortedKeys(m))
}

func TestIsZero(t *testing.T) {
	require.True(t, IsZero([]uint64{}))
	require.True(t, IsZero([]uint64{0, 0, 0}))
	require.False(t, IsZero([]uint64{0, 0, 1}))
	require.False(t, IsZero([]int{-1}))
}

func TestAlias1D(t *testing.T) {
	a := make([]uint64, 8)
	require.True(t, Alias1D(a, a[2:4]))
	require.False(t, Alias1D(a, make([]uint64, 8)))
	require.False(t, Alias1D(a, nil))
}
