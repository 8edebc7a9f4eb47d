package points

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/smallyu/go-toy-ecdh/internal/crypto/curves"
	"github.com/smallyu/go-toy-ecdh/internal/crypto/field"
	"github.com/smallyu/go-toy-ecdh/pkg/ecc"
	"github.com/smallyu/go-toy-ecdh/pkg/logging"
)

// DefaultMaxModulus bounds the exhaustive search. Enumeration costs O(p^2)
// field operations in the worst case, which stops being interactive well
// before 2^16.
const DefaultMaxModulus = 1 << 15

// chunkSize is the number of x values handled by one task.
const chunkSize = 256

// Enumerator lists the affine points of small curves by scanning every x.
type Enumerator struct {
	cache      *field.ResidueCache
	workers    int
	maxModulus uint64
	logger     logging.Logger
}

// Option configures an Enumerator.
type Option func(*Enumerator)

// WithCache shares a residue cache between enumerations.
func WithCache(cache *field.ResidueCache) Option {
	return func(e *Enumerator) { e.cache = cache }
}

// WithWorkers sets the number of goroutines scanning x ranges. Values below 1
// mean runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(e *Enumerator) { e.workers = n }
}

// WithMaxModulus raises or lowers the largest p accepted. It is clamped to
// math.MaxUint32.
func WithMaxModulus(p uint64) Option {
	return func(e *Enumerator) { e.maxModulus = min(p, math.MaxUint32) }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(e *Enumerator) { e.logger = l }
}

// NewEnumerator creates an Enumerator. Without WithCache it gets a private
// cache.
func NewEnumerator(opts ...Option) *Enumerator {
	e := &Enumerator{maxModulus: DefaultMaxModulus}
	for _, opt := range opts {
		opt(e)
	}
	if e.cache == nil {
		// The default size is positive, so this cannot fail.
		e.cache, _ = field.NewResidueCache(field.DefaultCacheSize)
	}
	if e.workers < 1 {
		e.workers = runtime.NumCPU()
	}
	if e.logger == nil {
		e.logger = logging.Nop()
	}
	return e
}

// MaxModulus returns the largest p the Enumerator accepts.
func (e *Enumerator) MaxModulus() uint64 {
	return e.maxModulus
}

// params holds the curve reduced to machine words for the scan.
type params struct {
	a, b, p uint64
}

func (e *Enumerator) params(c *curves.Curve) (params, error) {
	p := c.P()
	if err := field.CheckModulus(p); err != nil {
		return params{}, err
	}
	if !p.IsUint64() || p.Uint64() > e.maxModulus {
		return params{}, fmt.Errorf("p = %s exceeds %d: %w", p, e.maxModulus, ecc.ErrModulusTooLarge)
	}
	return params{a: c.A().Uint64(), b: c.B().Uint64(), p: p.Uint64()}, nil
}

// rhs evaluates x^3 + ax + b mod p. p < 2^32 keeps every product in range.
func (pr params) rhs(x uint64) uint64 {
	x3 := x * x % pr.p * x % pr.p
	return (x3 + pr.a*x%pr.p + pr.b) % pr.p
}

// root returns the smallest y with y^2 = r mod p by linear scan.
func (pr params) root(r uint64) (uint64, bool) {
	for y := uint64(0); y < pr.p; y++ {
		if y*y%pr.p == r {
			return y, true
		}
	}
	return 0, false
}

// Enumerate returns every affine point of c, ordered by x and then by the
// order the two roots are found: (x, y0) before (x, p - y0). The point at
// infinity is not included. Either the full set is returned or an error.
func (e *Enumerator) Enumerate(c *curves.Curve) ([]curves.Point, error) {
	pr, err := e.params(c)
	if err != nil {
		return nil, err
	}
	squares := e.cache.Squares(pr.p)

	chunks := int((pr.p + chunkSize - 1) / chunkSize)
	found := make([][]curves.Point, chunks)

	var eg errgroup.Group
	eg.SetLimit(e.workers)
	for i := 0; i < chunks; i++ {
		i := i
		eg.Go(func() error {
			lo := uint64(i) * chunkSize
			hi := min(lo+chunkSize, pr.p)
			var pts []curves.Point
			for x := lo; x < hi; x++ {
				r := pr.rhs(x)
				if !squares.Contains(uint32(r)) {
					continue
				}
				y, ok := pr.root(r)
				if !ok {
					return fmt.Errorf("residue %d mod %d has no root", r, pr.p)
				}
				bx := new(big.Int).SetUint64(x)
				pts = append(pts, curves.NewPoint(bx, new(big.Int).SetUint64(y)))
				if y != 0 && y != pr.p-y {
					pts = append(pts, curves.NewPoint(bx, new(big.Int).SetUint64(pr.p-y)))
				}
			}
			found[i] = pts
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var out []curves.Point
	for _, pts := range found {
		out = append(out, pts...)
	}
	e.logger.Debug(context.Background(), "enumerated curve points",
		"curve", c.Name(), "points", len(out), "workers", e.workers)
	return out, nil
}

// Count returns the group order |E(F_p)|, the point at infinity included,
// without materializing the points.
func (e *Enumerator) Count(c *curves.Curve) (uint64, error) {
	pr, err := e.params(c)
	if err != nil {
		return 0, err
	}
	squares := e.cache.Squares(pr.p)
	n := uint64(1)
	for x := uint64(0); x < pr.p; x++ {
		r := pr.rhs(x)
		if !squares.Contains(uint32(r)) {
			continue
		}
		if y, _ := pr.root(r); y != 0 && y != pr.p-y {
			n += 2
		} else {
			n++
		}
	}
	return n, nil
}
