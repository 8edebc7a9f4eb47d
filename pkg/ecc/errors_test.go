package ecc

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInverseError(t *testing.T) {
	v := big.NewInt(5)
	p := big.NewInt(15)
	err := NewInverseError(v, p)

	assert.Equal(t, "no modular inverse: 5 mod 15", err.Error())
	assert.True(t, errors.Is(err, ErrNoInverse))

	// The error keeps its own copies.
	v.SetInt64(7)
	assert.Equal(t, int64(5), err.Value.Int64())

	wrapped := fmt.Errorf("add: %w", err)
	var ie *InverseError
	assert.True(t, errors.As(wrapped, &ie))
	assert.Equal(t, int64(15), ie.Modulus.Int64())
}
