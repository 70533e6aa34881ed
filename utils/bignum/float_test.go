package bignum

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloat(t *testing.T) {

	t.Run("Log", func(t *testing.T) {
		x := 1.4142135623730951
		y, _ := Log(NewFloat(x, 53)).Float64()
		require.InDelta(t, math.Log(x), y, 1e-15)
	})

	t.Run("Log2", func(t *testing.T) {
		require.InDelta(t, 60.0, Log2(new(big.Int).Lsh(big.NewInt(1), 60)), 1e-12)

		// 2^200 does not fit in a float64 but its log does.
		require.InDelta(t, 200.0, Log2(new(big.Int).Lsh(big.NewInt(1), 200)), 1e-12)

		require.InDelta(t, math.Log2(12289), Log2(big.NewInt(12289)), 1e-12)
	})
}
