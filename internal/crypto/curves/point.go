package curves

import (
	"fmt"
	"math/big"

	"github.com/smallyu/go-toy-ecdh/internal/utils"
)

// Point is an affine point on a short Weierstrass curve, or the point at
// infinity. The zero value is the point at infinity.
//
// A Point owns copies of its coordinates and never hands out its internals,
// so values can be shared freely.
type Point struct {
	x, y   *big.Int
	finite bool
}

// Infinity returns the identity element O.
func Infinity() Point {
	return Point{}
}

// NewPoint returns the affine point (x, y). Coordinates are copied but not
// reduced or checked; use Curve.Point for that.
func NewPoint(x, y *big.Int) Point {
	return Point{x: new(big.Int).Set(x), y: new(big.Int).Set(y), finite: true}
}

// NewPointInt64 is a shorthand for small test and demo curves.
func NewPointInt64(x, y int64) Point {
	return Point{x: big.NewInt(x), y: big.NewInt(y), finite: true}
}

// IsInfinity reports whether p is the identity element.
func (p Point) IsInfinity() bool {
	return !p.finite
}

// X returns a copy of the x coordinate, or nil for the point at infinity.
func (p Point) X() *big.Int {
	if !p.finite {
		return nil
	}
	return new(big.Int).Set(p.x)
}

// Y returns a copy of the y coordinate, or nil for the point at infinity.
func (p Point) Y() *big.Int {
	if !p.finite {
		return nil
	}
	return new(big.Int).Set(p.y)
}

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	if p.finite != q.finite {
		return false
	}
	if !p.finite {
		return true
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

// String formats the point as "(x, y)" or "O".
func (p Point) String() string {
	if !p.finite {
		return "O"
	}
	return fmt.Sprintf("(%s, %s)", p.x, p.y)
}

type pointJSON struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// MarshalJSON encodes a finite point as {"x": "...", "y": "..."} with decimal
// strings, and the point at infinity as null.
func (p Point) MarshalJSON() ([]byte, error) {
	if !p.finite {
		return []byte("null"), nil
	}
	return utils.MarshalJSON(pointJSON{X: p.x.String(), Y: p.y.String()})
}

// UnmarshalJSON is the inverse of MarshalJSON. Coordinates may be decimal or
// 0x-prefixed hex.
func (p *Point) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Infinity()
		return nil
	}
	var raw pointJSON
	if err := utils.UnmarshalJSON(data, &raw); err != nil {
		return err
	}
	x, ok := new(big.Int).SetString(raw.X, 0)
	if !ok {
		return fmt.Errorf("invalid x coordinate %q", raw.X)
	}
	y, ok := new(big.Int).SetString(raw.Y, 0)
	if !ok {
		return fmt.Errorf("invalid y coordinate %q", raw.Y)
	}
	*p = Point{x: x, y: y, finite: true}
	return nil
}
