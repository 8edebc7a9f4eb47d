package polynomial

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-toy-ecdh/pkg/ecc"
)

func ints(vs ...int64) []*big.Int {
	out := make([]*big.Int, len(vs))
	for i, v := range vs {
		out[i] = big.NewInt(v)
	}
	return out
}

func TestNew(t *testing.T) {
	p := big.NewInt(17)

	t.Run("reduces coefficients", func(t *testing.T) {
		// -1 + 18x = 16 + x
		f, err := New(p, ints(-1, 18)...)
		require.NoError(t, err)
		assert.Equal(t, int64(16), f.Evaluate(big.NewInt(0)).Int64())
		assert.Equal(t, int64(0), f.Evaluate(big.NewInt(1)).Int64())
	})

	t.Run("zero polynomial", func(t *testing.T) {
		f, err := New(p)
		require.NoError(t, err)
		assert.Zero(t, f.Evaluate(big.NewInt(5)).Sign())
	})

	t.Run("invalid modulus", func(t *testing.T) {
		_, err := New(big.NewInt(1), ints(1)...)
		assert.True(t, errors.Is(err, ecc.ErrInvalidModulus))
	})

	t.Run("coefficients are copied", func(t *testing.T) {
		coeffs := ints(2, 3)
		f, err := New(p, coeffs...)
		require.NoError(t, err)
		coeffs[0].SetInt64(9)
		assert.Equal(t, int64(2), f.Evaluate(big.NewInt(0)).Int64())
	})
}

func TestEvaluate(t *testing.T) {
	// x^3 + 2x + 2 over F_17.
	p := big.NewInt(17)
	f, err := New(p, ints(2, 2, 0, 1)...)
	require.NoError(t, err)

	for x := int64(0); x < 17; x++ {
		want := (x*x*x + 2*x + 2) % 17
		assert.Equal(t, want, f.Evaluate(big.NewInt(x)).Int64(), "x = %d", x)
	}
	// Inputs outside [0, p) are reduced.
	assert.Equal(t, f.Evaluate(big.NewInt(5)), f.Evaluate(big.NewInt(22)))
	assert.Equal(t, f.Evaluate(big.NewInt(16)), f.Evaluate(big.NewInt(-1)))
}
