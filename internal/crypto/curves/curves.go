package curves

import (
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/smallyu/go-toy-ecdh/pkg/ecc"
)

// Group defines the point operations needed by the key exchange.
type Group interface {
	// Name returns a human-readable name of the group.
	Name() string

	// Curve returns the short Weierstrass parameters of the group.
	Curve() *Curve

	// IsOnCurve reports whether p belongs to the group.
	IsOnCurve(p Point) bool

	// Add combines two points
	Add(p, q Point) (Point, error)

	// ScalarMult computes k * p for k >= 0
	ScalarMult(p Point, k *big.Int) (Point, error)
}

var (
	_ Group = (*Curve)(nil)
	_ Group = (*Secp256k1)(nil)
)

// Secp256k1 is y^2 = x^3 + 7 backed by the decred implementation. It gives
// the key exchange a real-size curve and an independent reference for the
// generic arithmetic in Curve.
type Secp256k1 struct {
	weierstrass *Curve
}

// NewSecp256k1 returns a new instance of the Secp256k1 curve wrapper
func NewSecp256k1() *Secp256k1 {
	params := secp256k1.S256().Params()
	c, err := New(big.NewInt(0), params.B, params.P)
	if err != nil {
		// The parameters are constants.
		panic(err)
	}
	c.name = "secp256k1"
	return &Secp256k1{weierstrass: c}
}

func (c *Secp256k1) Name() string {
	return "secp256k1"
}

func (c *Secp256k1) Params() *elliptic.CurveParams {
	return secp256k1.S256().Params()
}

// Curve returns secp256k1 as a generic Curve, running the affine code path.
func (c *Secp256k1) Curve() *Curve {
	return c.weierstrass
}

// Order returns the order of the base point.
func (c *Secp256k1) Order() *big.Int {
	return new(big.Int).Set(c.Params().N)
}

// BasePoint returns the standard generator G.
func (c *Secp256k1) BasePoint() Point {
	params := c.Params()
	return NewPoint(params.Gx, params.Gy)
}

// NewScalar generates a random scalar in [1, N-1].
func (c *Secp256k1) NewScalar() (*big.Int, error) {
	n := new(big.Int).Sub(c.Params().N, big.NewInt(1))
	k, err := rand.Int(rand.Reader, n)
	if err != nil {
		return nil, err
	}
	return k.Add(k, big.NewInt(1)), nil
}

func (c *Secp256k1) IsOnCurve(p Point) bool {
	if p.IsInfinity() {
		return true
	}
	return secp256k1.S256().IsOnCurve(p.x, p.y)
}

// The elliptic.Curve API encodes the point at infinity as (0, 0), which is
// not on secp256k1.
func fromAffine(x, y *big.Int) Point {
	if x.Sign() == 0 && y.Sign() == 0 {
		return Infinity()
	}
	return NewPoint(x, y)
}

func (c *Secp256k1) Add(p, q Point) (Point, error) {
	if p.IsInfinity() {
		return q, nil
	}
	if q.IsInfinity() {
		return p, nil
	}
	if !c.IsOnCurve(p) || !c.IsOnCurve(q) {
		return Point{}, fmt.Errorf("secp256k1 add: %w", ecc.ErrPointNotOnCurve)
	}
	return fromAffine(secp256k1.S256().Add(p.x, p.y, q.x, q.y)), nil
}

func (c *Secp256k1) ScalarMult(p Point, k *big.Int) (Point, error) {
	if k == nil || k.Sign() < 0 {
		return Point{}, fmt.Errorf("scalar %v: %w", k, ecc.ErrInvalidScalar)
	}
	if p.IsInfinity() || k.Sign() == 0 {
		return Infinity(), nil
	}
	if !c.IsOnCurve(p) {
		return Point{}, fmt.Errorf("secp256k1 scalar mult: %w", ecc.ErrPointNotOnCurve)
	}
	kn := new(big.Int).Mod(k, c.Params().N)
	if kn.Sign() == 0 {
		return Infinity(), nil
	}
	return fromAffine(secp256k1.S256().ScalarMult(p.x, p.y, kn.Bytes())), nil
}
