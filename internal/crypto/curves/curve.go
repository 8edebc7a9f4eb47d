package curves

import (
	"fmt"
	"math/big"

	"github.com/smallyu/go-toy-ecdh/internal/crypto/field"
	"github.com/smallyu/go-toy-ecdh/internal/crypto/polynomial"
	"github.com/smallyu/go-toy-ecdh/pkg/ecc"
)

// Curve is y^2 = x^3 + ax + b over Z/pZ.
//
// p is assumed prime and the curve non-singular; neither is enforced, see
// IsSingular. A Curve is immutable after New.
type Curve struct {
	a, b, p *big.Int
	cubic   *polynomial.Polynomial
	name    string
}

// New creates the curve y^2 = x^3 + ax + b mod p. The coefficients are reduced
// into [0, p).
func New(a, b, p *big.Int) (*Curve, error) {
	if err := field.CheckModulus(p); err != nil {
		return nil, fmt.Errorf("curve modulus %v: %w", p, err)
	}
	c := &Curve{
		a: field.Mod(a, p),
		b: field.Mod(b, p),
		p: new(big.Int).Set(p),
	}
	cubic, err := polynomial.New(p, c.b, c.a, new(big.Int), big.NewInt(1))
	if err != nil {
		return nil, err
	}
	c.cubic = cubic
	c.name = fmt.Sprintf("y^2 = x^3 + %sx + %s mod %s", c.a, c.b, c.p)
	return c, nil
}

// NewInt64 is New for small parameters.
func NewInt64(a, b, p int64) (*Curve, error) {
	return New(big.NewInt(a), big.NewInt(b), big.NewInt(p))
}

// Name returns a printable form of the curve equation.
func (c *Curve) Name() string { return c.name }

// Curve returns c itself so that *Curve satisfies Group.
func (c *Curve) Curve() *Curve { return c }

// A returns a copy of the a coefficient.
func (c *Curve) A() *big.Int { return new(big.Int).Set(c.a) }

// B returns a copy of the b coefficient.
func (c *Curve) B() *big.Int { return new(big.Int).Set(c.b) }

// P returns a copy of the field modulus.
func (c *Curve) P() *big.Int { return new(big.Int).Set(c.p) }

// Point builds the affine point (x mod p, y mod p) and checks it lies on c.
func (c *Curve) Point(x, y *big.Int) (Point, error) {
	pt := Point{x: field.Mod(x, c.p), y: field.Mod(y, c.p), finite: true}
	if !c.IsOnCurve(pt) {
		return Point{}, fmt.Errorf("%s on %s: %w", pt, c.name, ecc.ErrPointNotOnCurve)
	}
	return pt, nil
}

// RHS evaluates x^3 + ax + b mod p.
func (c *Curve) RHS(x *big.Int) *big.Int {
	return c.cubic.Evaluate(x)
}

// IsOnCurve reports whether pt satisfies the curve equation. The point at
// infinity is always on the curve.
func (c *Curve) IsOnCurve(pt Point) bool {
	if pt.IsInfinity() {
		return true
	}
	return field.Mul(pt.y, pt.y, c.p).Cmp(c.RHS(pt.x)) == 0
}

// Discriminant returns 4a^3 + 27b^2 mod p. The curve is singular when it is 0.
func (c *Curve) Discriminant() *big.Int {
	a3 := field.Mul(field.Mul(c.a, c.a, c.p), c.a, c.p)
	b2 := field.Mul(c.b, c.b, c.p)
	return field.Add(field.Mul(big.NewInt(4), a3, c.p), field.Mul(big.NewInt(27), b2, c.p), c.p)
}

// IsSingular reports whether the cubic has a repeated root, in which case the
// chord-and-tangent law does not form a group.
func (c *Curve) IsSingular() bool {
	return c.Discriminant().Sign() == 0
}

// Neg returns -pt.
func (c *Curve) Neg(pt Point) Point {
	if pt.IsInfinity() {
		return pt
	}
	return Point{x: field.Mod(pt.x, c.p), y: field.Neg(pt.y, c.p), finite: true}
}

// ByteLen is the width of one encoded coordinate.
func (c *Curve) ByteLen() int {
	return (c.p.BitLen() + 7) / 8
}

// Encode serializes pt as 0x04 || x || y with fixed-width coordinates, or a
// single 0x00 byte for the point at infinity.
func (c *Curve) Encode(pt Point) []byte {
	if pt.IsInfinity() {
		return []byte{0x00}
	}
	n := c.ByteLen()
	out := make([]byte, 1+2*n)
	out[0] = 0x04
	field.Mod(pt.x, c.p).FillBytes(out[1 : 1+n])
	field.Mod(pt.y, c.p).FillBytes(out[1+n:])
	return out
}

// Decode is the inverse of Encode. The point must be on the curve.
func (c *Curve) Decode(b []byte) (Point, error) {
	if len(b) == 1 && b[0] == 0x00 {
		return Infinity(), nil
	}
	n := c.ByteLen()
	if len(b) != 1+2*n || b[0] != 0x04 {
		return Point{}, fmt.Errorf("invalid point encoding of length %d", len(b))
	}
	x := new(big.Int).SetBytes(b[1 : 1+n])
	y := new(big.Int).SetBytes(b[1+n:])
	if x.Cmp(c.p) >= 0 || y.Cmp(c.p) >= 0 {
		return Point{}, fmt.Errorf("coordinate out of range: %w", ecc.ErrPointNotOnCurve)
	}
	return c.Point(x, y)
}
