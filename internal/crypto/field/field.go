package field

import (
	"math"
	"math/big"

	"github.com/RoaringBitmap/roaring"

	"github.com/smallyu/go-toy-ecdh/pkg/ecc"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// CheckModulus returns ecc.ErrInvalidModulus unless p >= 2.
func CheckModulus(p *big.Int) error {
	if p == nil || p.Cmp(two) < 0 {
		return ecc.ErrInvalidModulus
	}
	return nil
}

// Mod reduces v into [0, p).
func Mod(v, p *big.Int) *big.Int {
	// big.Int.Mod is Euclidean, the result is never negative for p > 0.
	return new(big.Int).Mod(v, p)
}

// Add returns (a + b) mod p.
func Add(a, b, p *big.Int) *big.Int { return Mod(new(big.Int).Add(a, b), p) }

// Sub returns (a - b) mod p.
func Sub(a, b, p *big.Int) *big.Int { return Mod(new(big.Int).Sub(a, b), p) }

// Mul returns (a * b) mod p.
func Mul(a, b, p *big.Int) *big.Int { return Mod(new(big.Int).Mul(a, b), p) }

// Neg returns -a mod p.
func Neg(a, p *big.Int) *big.Int { return Mod(new(big.Int).Neg(a), p) }

// Inverse returns u such that u*v = 1 (mod p).
//
// The extended Euclidean algorithm is used, so p does not have to be prime for
// the call itself; the curve code however assumes a prime p, where every
// non-zero value is invertible.
func Inverse(v, p *big.Int) (*big.Int, error) {
	if err := CheckModulus(p); err != nil {
		return nil, err
	}
	r := Mod(v, p)
	inv := new(big.Int).ModInverse(r, p)
	if inv == nil {
		return nil, ecc.NewInverseError(r, p)
	}
	return inv, nil
}

// IsQuadraticResidue reports whether some y in [0, p) satisfies y^2 = r (mod p).
//
// Moduli that fit in 32 bits are answered exactly from the set of squares.
// Larger moduli use Euler's criterion, which is only valid for prime p.
func IsQuadraticResidue(r, p *big.Int) bool {
	if CheckModulus(p) != nil {
		return false
	}
	if p.IsUint64() && p.Uint64() <= math.MaxUint32 {
		pp := p.Uint64()
		return squares(pp).Contains(uint32(Mod(r, p).Uint64()))
	}
	return euler(Mod(r, p), p)
}

// squares collects {i^2 mod p : i in [0, p/2]}. Since i and p-i have the same
// square, the upper half of [0, p) adds nothing.
func squares(p uint64) *roaring.Bitmap {
	bm := roaring.New()
	for i := uint64(0); i <= p/2; i++ {
		bm.Add(uint32(i * i % p))
	}
	bm.RunOptimize()
	return bm
}

// euler evaluates r^((p-1)/2) mod p: 1 for residues, p-1 for non-residues.
func euler(r, p *big.Int) bool {
	if r.Sign() == 0 {
		return true
	}
	e := new(big.Int).Rsh(new(big.Int).Sub(p, one), 1)
	return new(big.Int).Exp(r, e, p).Cmp(one) == 0
}
