package rlwe

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/hestore/hestore/utils"
)

func newPropertyContext(t *testing.T) *Context {
	params, err := NewParametersFromLiteral(ParametersLiteral{
		LogN: 3,
		Q:    qi[:3],
		P:    pj[:1],
	})
	require.NoError(t, err)

	ctx, err := NewContext(params)
	require.NoError(t, err)

	return ctx
}

// newFilledCiphertext returns a ciphertext bound to id with capacity c and
// size s (unbound and empty if s is 0) whose polynomials hold distinct values.
func newFilledCiphertext(ctx *Context, id ParmsID, c, s int) (*Ciphertext, error) {

	ct := NewCiphertext()

	if s == 0 {
		return ct, nil
	}

	if err := ct.ResizeWithParmsID(ctx, id, s); err != nil {
		return nil, err
	}

	if err := ct.ReserveCurrent(c); err != nil {
		return nil, err
	}

	for i := 0; i < s; i++ {
		pol, _ := ct.Poly(i)
		for j := range pol {
			pol[j] = uint64(i*len(pol)+j) + 1
		}
	}

	return ct, nil
}

func TestCiphertextProperties(t *testing.T) {

	ctx := newPropertyContext(t)
	ids := ctx.ParmsIDs()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	genLevel := gen.IntRange(0, len(ids)-1)
	genSize := gen.IntRange(0, 6)
	genCapacity := gen.IntRange(CiphertextSizeMin, 8)

	properties.Property("reserve grows the capacity and keeps the size", prop.ForAll(
		func(from, to, s, c, capacity int) bool {

			ct, err := newFilledCiphertext(ctx, ids[from], c, utils.Max(s, CiphertextSizeMin)*utils.Min(s, 1))
			if err != nil {
				return false
			}

			size := ct.Size()

			if err = ct.ReserveWithParmsID(ctx, ids[to], capacity); err != nil {
				return false
			}

			return ct.Size() == size &&
				ct.SizeCapacity() >= capacity &&
				ct.ParmsID() == ids[to] &&
				ct.IsBufferValid() &&
				ct.IsMetadataValidFor(ctx)
		},
		genLevel, genLevel, genSize, genCapacity, genCapacity,
	))

	properties.Property("resize sets the size and preserves the polynomials below it", prop.ForAll(
		func(id, s, c, size int) bool {

			s = utils.Max(s, CiphertextSizeMin)

			ct, err := newFilledCiphertext(ctx, ids[id], utils.Max(s, c), s)
			if err != nil {
				return false
			}

			before := ct.CopyNew()

			if err = ct.ResizeCurrent(size); err != nil {
				return false
			}

			if ct.Size() != size || ct.SizeCapacity() < size || !ct.IsBufferValid() {
				return false
			}

			for i := 0; i < utils.Min(s, size); i++ {
				want, _ := before.Poly(i)
				have, _ := ct.Poly(i)
				for j := range want {
					if want[j] != have[j] {
						return false
					}
				}
			}

			return true
		},
		genLevel, genSize, genCapacity, genCapacity,
	))

	properties.Property("sizes below two are rejected without allocating", prop.ForAll(
		func(id, s, c, invalid int) bool {

			ct, err := newFilledCiphertext(ctx, ids[id], c, utils.Max(s, CiphertextSizeMin)*utils.Min(s, 1))
			if err != nil {
				return false
			}

			before := ct.CopyNew()
			capacity := ct.SizeCapacity()

			for _, f := range []func() error{
				func() error { return ct.ReserveWithParmsID(ctx, ids[id], invalid) },
				func() error { return ct.ResizeWithParmsID(ctx, ids[id], invalid) },
				func() error { return ct.Reserve(ctx, invalid) },
				func() error { return ct.Resize(ctx, invalid) },
			} {
				if !errors.Is(f(), ErrInvalidArgument) {
					return false
				}
			}

			return before.Equal(ct) && capacity == ct.SizeCapacity()
		},
		genLevel, genSize, genCapacity, gen.IntRange(-2, 1),
	))

	properties.Property("copy is deep and move empties the source", prop.ForAll(
		func(id, s, c int) bool {

			s = utils.Max(s, CiphertextSizeMin)

			src, err := newFilledCiphertext(ctx, ids[id], utils.Max(s, c), s)
			if err != nil {
				return false
			}

			want := src.CopyNew()

			cpy := src.CopyNew()
			if !cpy.Equal(src) || utils.Alias1D(cpy.Data(), src.Data()) {
				return false
			}

			if err = cpy.Set(0, 0); err != nil {
				return false
			}

			if v, _ := src.At(0); v == 0 {
				return false
			}

			dst := NewCiphertext()
			dst.MoveFrom(src)

			return src.Equal(NewCiphertext()) &&
				src.SizeCapacity() == 0 &&
				dst.Equal(want) &&
				dst.SizeCapacity() == want.SizeCapacity()
		},
		genLevel, genSize, genCapacity,
	))

	properties.TestingRun(t)
}
