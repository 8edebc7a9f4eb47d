package ecdh

import (
	"math/big"

	"github.com/smallyu/go-toy-ecdh/internal/crypto/curves"
	"github.com/smallyu/go-toy-ecdh/internal/crypto/order"
	"github.com/smallyu/go-toy-ecdh/internal/crypto/points"
)

type (
	// Point is an affine curve point or the point at infinity (the zero value).
	Point = curves.Point
	// Curve is the short Weierstrass curve y^2 = x^3 + ax + b mod p.
	Curve = curves.Curve
	// Group is a curve the exchange can run on.
	Group = curves.Group
	// Ranked pairs a point with its order.
	Ranked = order.Ranked
)

// Infinity returns the identity element.
func Infinity() Point { return curves.Infinity() }

// NewPoint returns the affine point (x, y).
func NewPoint(x, y *big.Int) Point { return curves.NewPoint(x, y) }

// NewPointInt64 returns the affine point (x, y).
func NewPointInt64(x, y int64) Point { return curves.NewPointInt64(x, y) }

// NewCurve returns y^2 = x^3 + ax + b mod p. p must be prime for the group
// law to hold; only p >= 2 is checked.
func NewCurve(a, b, p *big.Int) (*Curve, error) { return curves.New(a, b, p) }

// NewCurveInt64 is NewCurve for small parameters.
func NewCurveInt64(a, b, p int64) (*Curve, error) { return curves.NewInt64(a, b, p) }

// NewSecp256k1 returns the secp256k1 group.
func NewSecp256k1() *curves.Secp256k1 { return curves.NewSecp256k1() }

// EnumeratePoints returns every affine point of y^2 = x^3 + ax + b mod p in
// ascending x. The point at infinity is not included.
func EnumeratePoints(a, b, p *big.Int) ([]Point, error) {
	c, err := curves.New(a, b, p)
	if err != nil {
		return nil, err
	}
	return points.NewEnumerator().Enumerate(c)
}

// lawCurve returns a curve carrying only what the group law reads. The
// chord-and-tangent formulas never use b.
func lawCurve(a, p *big.Int) (*Curve, error) {
	return curves.New(a, new(big.Int), p)
}

// Add returns P + Q on any curve with coefficient a over F_p.
func Add(P, Q Point, a, p *big.Int) (Point, error) {
	c, err := lawCurve(a, p)
	if err != nil {
		return Point{}, err
	}
	return c.Add(P, Q)
}

// ScalarMultiply returns kP for k >= 0.
func ScalarMultiply(P Point, k, a, p *big.Int) (Point, error) {
	c, err := lawCurve(a, p)
	if err != nil {
		return Point{}, err
	}
	return c.ScalarMult(P, k)
}

// OrderOf returns the smallest n > 0 with nP = O. ecc.ErrUnboundedOrder means
// no such n was found.
func OrderOf(P Point, a, p *big.Int) (uint64, error) {
	c, err := lawCurve(a, p)
	if err != nil {
		return 0, err
	}
	return order.NewAnalyzer().Of(c, P)
}

// RankByOrder returns pts sorted by descending order, at most limit of them
// when limit > 0.
func RankByOrder(pts []Point, a, p *big.Int, limit int) ([]Ranked, error) {
	c, err := lawCurve(a, p)
	if err != nil {
		return nil, err
	}
	return order.NewAnalyzer().RankByOrder(c, pts, limit)
}
