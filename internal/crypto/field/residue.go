package field

import (
	"math"
	"math/big"

	"github.com/RoaringBitmap/roaring"
	lru "github.com/hashicorp/golang-lru"
)

// DefaultCacheSize is the number of moduli a ResidueCache keeps by default.
const DefaultCacheSize = 16

// ResidueCache remembers the set of squares for recently used moduli.
//
// The cache is owned by the caller and handed to whoever needs it, so two
// computations with different p never share stale state. It is safe for
// concurrent use. Only moduli up to math.MaxUint32 are cached.
type ResidueCache struct {
	squares *lru.Cache
}

// NewResidueCache creates a cache holding at most size moduli.
func NewResidueCache(size int) (*ResidueCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &ResidueCache{squares: c}, nil
}

// Squares returns the set of quadratic residues modulo p, computing it on a
// miss. The returned bitmap is shared and must not be modified.
func (c *ResidueCache) Squares(p uint64) *roaring.Bitmap {
	if v, ok := c.squares.Get(p); ok {
		return v.(*roaring.Bitmap)
	}
	bm := squares(p)
	c.squares.Add(p, bm)
	return bm
}

// IsQuadraticResidue is the cached form of the package-level function.
func (c *ResidueCache) IsQuadraticResidue(r, p *big.Int) bool {
	if CheckModulus(p) != nil {
		return false
	}
	if !p.IsUint64() || p.Uint64() > math.MaxUint32 {
		return euler(Mod(r, p), p)
	}
	return c.Squares(p.Uint64()).Contains(uint32(Mod(r, p).Uint64()))
}

// Len returns the number of cached moduli.
func (c *ResidueCache) Len() int {
	return c.squares.Len()
}

// Purge drops every cached modulus.
func (c *ResidueCache) Purge() {
	c.squares.Purge()
}
