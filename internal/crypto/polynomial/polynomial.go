package polynomial

import (
	"math/big"

	"github.com/smallyu/go-toy-ecdh/internal/crypto/field"
)

// Polynomial represents f(x) = a_0 + a_1*x + ... + a_t*x^t over F_p.
type Polynomial struct {
	coefficients []*big.Int
	modulus      *big.Int
}

// New builds the polynomial with the given coefficients, lowest degree first.
// Coefficients are copied and reduced mod p.
func New(p *big.Int, coefficients ...*big.Int) (*Polynomial, error) {
	if err := field.CheckModulus(p); err != nil {
		return nil, err
	}
	coeffs := make([]*big.Int, len(coefficients))
	for i, c := range coefficients {
		coeffs[i] = field.Mod(c, p)
	}
	return &Polynomial{coefficients: coeffs, modulus: new(big.Int).Set(p)}, nil
}

// Evaluate calculates f(x) mod p with Horner's method.
func (f *Polynomial) Evaluate(x *big.Int) *big.Int {
	result := new(big.Int)
	for i := len(f.coefficients) - 1; i >= 0; i-- {
		result.Mul(result, x)
		result.Add(result, f.coefficients[i])
		result.Mod(result, f.modulus)
	}
	return result
}
