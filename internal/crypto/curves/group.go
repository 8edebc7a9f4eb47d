package curves

import (
	"fmt"
	"math/big"

	"github.com/smallyu/go-toy-ecdh/internal/crypto/field"
	"github.com/smallyu/go-toy-ecdh/pkg/ecc"
)

// addCase selects one branch of the group law.
type addCase int

const (
	// caseIdentity: one operand is O, the result is the other operand.
	caseIdentity addCase = iota
	// caseVertical: the line through the operands is vertical, the result is O.
	// Covers P + (-P) and doubling a point with y = 0.
	caseVertical
	// caseDoubling: tangent slope (3x^2 + a) / 2y.
	caseDoubling
	// caseGeneral: chord slope (y2 - y1) / (x2 - x1).
	caseGeneral
)

func (k addCase) String() string {
	switch k {
	case caseIdentity:
		return "identity"
	case caseVertical:
		return "vertical"
	case caseDoubling:
		return "doubling"
	case caseGeneral:
		return "general"
	default:
		return "unknown"
	}
}

// classify expects reduced operands.
func classify(p, q Point) addCase {
	if p.IsInfinity() || q.IsInfinity() {
		return caseIdentity
	}
	if p.x.Cmp(q.x) != 0 {
		return caseGeneral
	}
	if p.y.Cmp(q.y) == 0 && p.y.Sign() != 0 {
		return caseDoubling
	}
	return caseVertical
}

func (c *Curve) reduce(pt Point) Point {
	if pt.IsInfinity() {
		return pt
	}
	return Point{x: field.Mod(pt.x, c.p), y: field.Mod(pt.y, c.p), finite: true}
}

// Add returns p + q under the chord-and-tangent law.
//
// The only failure is ecc.ErrNoInverse, which cannot happen for a prime
// modulus and points on the curve.
func (c *Curve) Add(p, q Point) (Point, error) {
	p, q = c.reduce(p), c.reduce(q)

	var m *big.Int
	switch classify(p, q) {
	case caseIdentity:
		if p.IsInfinity() {
			return q, nil
		}
		return p, nil
	case caseVertical:
		return Infinity(), nil
	case caseDoubling:
		num := field.Add(field.Mul(big.NewInt(3), field.Mul(p.x, p.x, c.p), c.p), c.a, c.p)
		inv, err := field.Inverse(field.Mul(big.NewInt(2), p.y, c.p), c.p)
		if err != nil {
			return Point{}, fmt.Errorf("doubling %s: %w", p, err)
		}
		m = field.Mul(num, inv, c.p)
	case caseGeneral:
		inv, err := field.Inverse(field.Sub(q.x, p.x, c.p), c.p)
		if err != nil {
			return Point{}, fmt.Errorf("adding %s and %s: %w", p, q, err)
		}
		m = field.Mul(field.Sub(q.y, p.y, c.p), inv, c.p)
	}

	x3 := field.Sub(field.Sub(field.Mul(m, m, c.p), p.x, c.p), q.x, c.p)
	y3 := field.Sub(field.Mul(m, field.Sub(p.x, x3, c.p), c.p), p.y, c.p)
	return Point{x: x3, y: y3, finite: true}, nil
}

// Double returns p + p.
func (c *Curve) Double(p Point) (Point, error) {
	return c.Add(p, p)
}

// ScalarMult computes k * p with double-and-add, scanning k from the least
// significant bit. k must be non-negative; k = 0 yields O. For k >= 1 every
// doubling of p up to 2^bitlen(k) * p is computed, so a doubling with no
// inverse fails the call even when its result is not needed.
func (c *Curve) ScalarMult(p Point, k *big.Int) (Point, error) {
	if k == nil || k.Sign() < 0 {
		return Point{}, fmt.Errorf("scalar %v: %w", k, ecc.ErrInvalidScalar)
	}

	r := Infinity()
	q := c.reduce(p)
	n := k.BitLen()
	for i := 0; i < n; i++ {
		var err error
		if k.Bit(i) == 1 {
			if r, err = c.Add(r, q); err != nil {
				return Point{}, err
			}
		}
		// Q is doubled after every bit, the top one included.
		if q, err = c.Add(q, q); err != nil {
			return Point{}, err
		}
	}
	return r, nil
}
