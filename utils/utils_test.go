package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllDistinct(t *testing.T) {
	require.True(t, AllDistinct([]uint64{}))
	require.True(t, AllDistinct([]uint64{1}))
	require.True(t, AllDistinct([]uint64{1, 2, 3}))
	require.False(t, AllDistinct([]uint64{1, 1}))
	require.False(t, AllDistinct([]uint64{1, 2, 3, 4, 5, 5}))
}

func TestMinMax(t *testing.T) {
	require.Equal(t, 2, Min(2, 3))
	require.Equal(t, uint64(3), Max(uint64(2), 3))
	require.Equal(t, -1.5, Min(-1.5, 0))
}

func TestMulSafe(t *testing.T) {

	t.Run("InRange", func(t *testing.T) {
		p, ok := MulSafe(8, 2, 2)
		require.True(t, ok)
		require.Equal(t, 32, p)

		p, ok = MulSafe(8, 0, math.MaxInt)
		require.True(t, ok)
		require.Equal(t, 0, p)

		p, ok = MulSafe()
		require.True(t, ok)
		require.Equal(t, 0, p)
	})

	t.Run("Overflow", func(t *testing.T) {
		_, ok := MulSafe(1<<20, 1<<20, 1<<30)
		require.False(t, ok)

		_, ok = MulSafe(math.MaxInt, 2)
		require.False(t, ok)
	})

	t.Run("Negative", func(t *testing.T) {
		_, ok := MulSafe(4, -1)
		require.False(t, ok)
	})
}
