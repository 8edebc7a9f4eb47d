package ecc

import (
	"errors"
	"fmt"
	"math/big"
)

// Common errors returned by the curve arithmetic packages.
var (
	ErrNoInverse       = errors.New("no modular inverse")
	ErrInvalidModulus  = errors.New("invalid modulus")
	ErrInvalidScalar   = errors.New("invalid scalar")
	ErrUnboundedOrder  = errors.New("point order is unbounded")
	ErrModulusTooLarge = errors.New("modulus too large for exhaustive search")
	ErrPointNotOnCurve = errors.New("point is not on the curve")
	ErrNoPoints        = errors.New("curve has no affine points")
)

// InverseError reports the value that had no inverse modulo Modulus.
// It usually means the modulus is not prime, or that the group law reached a
// division it should have branched around.
type InverseError struct {
	Value   *big.Int
	Modulus *big.Int
}

func (e *InverseError) Error() string {
	return fmt.Sprintf("%v: %s mod %s", ErrNoInverse, e.Value, e.Modulus)
}

func (e *InverseError) Unwrap() error {
	return ErrNoInverse
}

// NewInverseError creates a new InverseError.
func NewInverseError(value, modulus *big.Int) *InverseError {
	return &InverseError{
		Value:   new(big.Int).Set(value),
		Modulus: new(big.Int).Set(modulus),
	}
}
