package field

import (
	"errors"
	"math/big"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-toy-ecdh/pkg/ecc"
)

func bi(v int64) *big.Int { return big.NewInt(v) }

func TestModOps(t *testing.T) {
	p := bi(11)
	assert.Equal(t, bi(10), Mod(bi(-1), p))  // -1 = 10 mod 11
	assert.Equal(t, bi(2), Add(bi(8), bi(5), p))
	assert.Equal(t, bi(9), Sub(bi(3), bi(5), p)) // -2 = 9 mod 11
	assert.Equal(t, bi(2), Mul(bi(7), bi(5), p)) // 35 = 2 mod 11
	assert.Equal(t, bi(6), Neg(bi(5), p))
	assert.Equal(t, 0, Neg(bi(0), p).Sign())
}

func TestInverse(t *testing.T) {
	t.Run("prime modulus", func(t *testing.T) {
		p := bi(17)
		for v := int64(1); v < 17; v++ {
			inv, err := Inverse(bi(v), p)
			require.NoError(t, err)
			assert.Equal(t, int64(1), Mul(inv, bi(v), p).Int64(), "v=%d", v)
			assert.True(t, inv.Sign() >= 0 && inv.Cmp(p) < 0)
		}
	})

	t.Run("negative input is reduced first", func(t *testing.T) {
		inv, err := Inverse(bi(-6), bi(11)) // -6 = 5, 5*9 = 45 = 1
		require.NoError(t, err)
		assert.Equal(t, bi(9), inv)
	})

	t.Run("zero has no inverse", func(t *testing.T) {
		_, err := Inverse(bi(34), bi(17))
		assert.True(t, errors.Is(err, ecc.ErrNoInverse))

		var ie *ecc.InverseError
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, 0, ie.Value.Sign())
	})

	t.Run("shared factor", func(t *testing.T) {
		_, err := Inverse(bi(6), bi(15))
		assert.True(t, errors.Is(err, ecc.ErrNoInverse))
	})

	t.Run("invalid modulus", func(t *testing.T) {
		for _, p := range []*big.Int{nil, bi(-7), bi(0), bi(1)} {
			_, err := Inverse(bi(3), p)
			assert.True(t, errors.Is(err, ecc.ErrInvalidModulus), "p=%v", p)
		}
	})
}

// ed25519Order is l = 2^252 + 27742317777372353535851937790883648493.
func ed25519Order() *big.Int {
	l, _ := new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)
	return l
}

func toLittleEndian32(n *big.Int) []byte {
	b := n.Bytes()
	buf := make([]byte, 32)
	for i := 0; i < len(b); i++ {
		buf[len(b)-1-i] = b[i]
	}
	return buf
}

func fromLittleEndian(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i := range b {
		be[len(b)-1-i] = b[i]
	}
	return new(big.Int).SetBytes(be)
}

// The ed25519 scalar field is a large prime field, so edwards25519's
// constant-time inversion is an independent oracle for Inverse.
func TestInverseMatchesEdwards25519(t *testing.T) {
	l := ed25519Order()
	values := []*big.Int{
		bi(1),
		bi(2),
		bi(12345),
		new(big.Int).Sub(l, bi(1)),
		new(big.Int).Rsh(l, 3),
	}

	for _, v := range values {
		s, err := edwards25519.NewScalar().SetCanonicalBytes(toLittleEndian32(v))
		require.NoError(t, err)
		want := fromLittleEndian(edwards25519.NewScalar().Invert(s).Bytes())

		got, err := Inverse(v, l)
		require.NoError(t, err)
		assert.Equal(t, 0, want.Cmp(got), "v=%s", v)
	}
}

func bruteForceResidue(r, p int64) bool {
	r = ((r % p) + p) % p
	for y := int64(0); y < p; y++ {
		if y*y%p == r {
			return true
		}
	}
	return false
}

func TestIsQuadraticResidue(t *testing.T) {
	// Composite and even moduli are answered exactly as well.
	for _, p := range []int64{2, 3, 4, 11, 15, 17, 97} {
		for r := int64(-3); r < p+3; r++ {
			assert.Equal(t, bruteForceResidue(r, p), IsQuadraticResidue(bi(r), bi(p)), "r=%d p=%d", r, p)
		}
	}

	assert.False(t, IsQuadraticResidue(bi(1), bi(1)))
	assert.False(t, IsQuadraticResidue(bi(1), nil))
}

func TestIsQuadraticResidueEuler(t *testing.T) {
	l := ed25519Order()
	x := new(big.Int).Rsh(l, 7)
	sq := Mul(x, x, l)

	assert.True(t, IsQuadraticResidue(sq, l))
	assert.True(t, IsQuadraticResidue(bi(0), l))

	// Exactly one of r and r*n is a residue for a fixed non-residue n.
	var n *big.Int
	for c := int64(2); ; c++ {
		if !IsQuadraticResidue(bi(c), l) {
			n = bi(c)
			break
		}
	}
	assert.False(t, IsQuadraticResidue(Mul(sq, n, l), l))
}

func TestResidueCache(t *testing.T) {
	cache, err := NewResidueCache(2)
	require.NoError(t, err)

	for _, p := range []int64{11, 17} {
		for r := int64(0); r < p; r++ {
			assert.Equal(t, bruteForceResidue(r, p), cache.IsQuadraticResidue(bi(r), bi(p)))
		}
	}
	assert.Equal(t, 2, cache.Len())

	// Same bitmap is handed back on a hit.
	assert.Same(t, cache.Squares(17), cache.Squares(17))

	// Third modulus evicts the least recently used one.
	cache.Squares(97)
	assert.Equal(t, 2, cache.Len())

	// Large moduli bypass the cache.
	l := ed25519Order()
	assert.True(t, cache.IsQuadraticResidue(bi(4), l))
	assert.Equal(t, 2, cache.Len())

	cache.Purge()
	assert.Equal(t, 0, cache.Len())

	assert.False(t, cache.IsQuadraticResidue(bi(0), bi(1)))
}

func TestResidueCacheDefaultSize(t *testing.T) {
	cache, err := NewResidueCache(0)
	require.NoError(t, err)
	for p := uint64(2); p < DefaultCacheSize+10; p++ {
		cache.Squares(p)
	}
	assert.Equal(t, DefaultCacheSize, cache.Len())
}
