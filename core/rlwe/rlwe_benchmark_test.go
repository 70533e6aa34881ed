package rlwe

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func BenchmarkRLWE(b *testing.B) {

	var err error

	defaultParamsLiteral := testInsecure

	if *flagParamString != "" {
		var jsonParams ParametersLiteral
		if err = json.Unmarshal([]byte(*flagParamString), &jsonParams); err != nil {
			b.Fatal(err)
		}
		defaultParamsLiteral = []ParametersLiteral{jsonParams} // the custom test suite reads the parameters from the -params flag
	}

	for _, paramsLit := range defaultParamsLiteral[:] {

		var params Parameters
		if params, err = NewParametersFromLiteral(paramsLit); err != nil {
			b.Fatal(err)
		}

		tc, err := NewTestContext(params)
		require.NoError(b, err)

		for _, testSet := range []func(tc *TestContext, b *testing.B){
			benchCiphertext,
			benchSeed,
		} {
			testSet(tc, b)
			runtime.GC()
		}
	}
}

func benchCiphertext(tc *TestContext, b *testing.B) {

	params := tc.params
	ctx := tc.ctx
	id := ctx.FirstParmsID()

	b.Run(testString(params, params.MaxLevel(), "Ciphertext/Reserve/Grow"), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			ct := NewCiphertext()
			if err := ct.ReserveWithParmsID(ctx, id, 3); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run(testString(params, params.MaxLevel(), "Ciphertext/Resize/InPlace"), func(b *testing.B) {

		ct, err := NewCiphertextWithCapacity(ctx, id, 3)
		require.NoError(b, err)

		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			if err := ct.ResizeCurrent(2 + i&1); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run(testString(params, params.MaxLevel(), "Ciphertext/CopyNew"), func(b *testing.B) {

		ct := NewCiphertext()
		require.NoError(b, ct.ResizeWithParmsID(ctx, id, 2))
		tc.fillUniform(ct)

		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			_ = ct.CopyNew()
		}
	})

	b.Run(testString(params, params.MaxLevel(), "Ciphertext/IsTransparent"), func(b *testing.B) {

		ct := NewCiphertext()
		require.NoError(b, ct.ResizeWithParmsID(ctx, id, 2))
		pol, err := ct.Poly(1)
		require.NoError(b, err)
		pol[len(pol)-1] = 1

		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			_ = ct.IsTransparent()
		}
	})

	b.Run(testString(params, params.MaxLevel(), "Ciphertext/IsValidFor"), func(b *testing.B) {

		ct := NewCiphertext()
		require.NoError(b, ct.ResizeWithParmsID(ctx, id, 2))
		tc.fillUniform(ct)

		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			_ = ct.IsValidFor(ctx)
		}
	})
}

func benchSeed(tc *TestContext, b *testing.B) {

	params := tc.params
	ctx := tc.ctx

	for _, typ := range []PRNGType{PRNGBlake2b, PRNGBlake3} {

		b.Run(testString(params, params.MaxLevel(), "Seed/ExpandSeed/"+typ.String()), func(b *testing.B) {

			info, err := NewGeneratorInfo(typ)
			require.NoError(b, err)

			ct, err := NewCiphertextWithContext(ctx)
			require.NoError(b, err)
			require.NoError(b, ct.ResizeCurrent(2))

			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if err := ct.SetSeedMarker(); err != nil {
					b.Fatal(err)
				}
				if err := ct.ExpandSeed(ctx, info); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
