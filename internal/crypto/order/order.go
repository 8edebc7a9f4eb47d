package order

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/smallyu/go-toy-ecdh/internal/crypto/curves"
	"github.com/smallyu/go-toy-ecdh/pkg/ecc"
	"github.com/smallyu/go-toy-ecdh/pkg/logging"
)

// Ranked is a point together with the order it generates.
type Ranked struct {
	Point curves.Point `json:"point"`
	// Order is 0 when Unbounded is set.
	Order     uint64 `json:"order"`
	Unbounded bool   `json:"unbounded,omitempty"`
}

// Analyzer computes point orders by repeated addition.
type Analyzer struct {
	workers   int
	stepLimit uint64
	logger    logging.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithWorkers sets how many orders RankByOrder computes at once. Values below
// 1 mean runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(a *Analyzer) { a.workers = n }
}

// WithStepLimit caps the number of additions per point. Zero, the default,
// means 2p + 2, which is above the Hasse bound p + 1 + 2*sqrt(p).
func WithStepLimit(n uint64) Option {
	return func(a *Analyzer) { a.stepLimit = n }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	if a.workers < 1 {
		a.workers = runtime.NumCPU()
	}
	if a.logger == nil {
		a.logger = logging.Nop()
	}
	return a
}

func (a *Analyzer) limit(c *curves.Curve) uint64 {
	if a.stepLimit > 0 {
		return a.stepLimit
	}
	l := new(big.Int).Lsh(c.P(), 1)
	l.Add(l, big.NewInt(2))
	if !l.IsUint64() {
		return ^uint64(0)
	}
	return l.Uint64()
}

// Of returns the smallest n > 0 with nP = O. The point at infinity has order 1.
//
// The search adds P to a running total until it reaches O. If the total comes
// back to P first, or the step limit is hit, P does not behave like a point of
// a finite group on c and ecc.ErrUnboundedOrder is returned.
func (a *Analyzer) Of(c *curves.Curve, pt curves.Point) (uint64, error) {
	limit := a.limit(c)
	// Adding O only reduces the coordinates.
	pt, _ = c.Add(pt, curves.Infinity())
	q := pt
	n := uint64(1)
	for !q.IsInfinity() {
		var err error
		if q, err = c.Add(q, pt); err != nil {
			return 0, err
		}
		n++
		// Unreachable with the chord-and-tangent law: an exhaustive search over
		// every a and (x, y) for all moduli below 40, composite ones included,
		// found no return to P before O. The step cap below is what fires.
		if q.Equal(pt) {
			return 0, fmt.Errorf("%s returned to itself after %d steps: %w", pt, n, ecc.ErrUnboundedOrder)
		}
		if n > limit {
			return 0, fmt.Errorf("%s exceeded %d steps: %w", pt, limit, ecc.ErrUnboundedOrder)
		}
	}
	return n, nil
}

// RankByOrder sorts pts by descending order and returns at most limit entries;
// limit <= 0 returns all of them. Ties keep their input order, but callers
// should not rely on which of several equal-order points comes first. Points
// with unbounded order are flagged and placed last, below every finite order,
// so the top entry is always usable as a generator when any point has a finite
// order. Ranking them as infinitely large, and so first, would make the top
// pick a point that never reaches O. Any other error aborts the ranking.
func (a *Analyzer) RankByOrder(c *curves.Curve, pts []curves.Point, limit int) ([]Ranked, error) {
	ranked := make([]Ranked, len(pts))

	var eg errgroup.Group
	eg.SetLimit(a.workers)
	for i, pt := range pts {
		i, pt := i, pt
		eg.Go(func() error {
			n, err := a.Of(c, pt)
			switch {
			case errors.Is(err, ecc.ErrUnboundedOrder):
				ranked[i] = Ranked{Point: pt, Unbounded: true}
			case err != nil:
				return err
			default:
				ranked[i] = Ranked{Point: pt, Order: n}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Unbounded != ranked[j].Unbounded {
			return !ranked[i].Unbounded
		}
		return ranked[i].Order > ranked[j].Order
	})
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}

	a.logger.Debug(context.Background(), "ranked points by order",
		"curve", c.Name(), "points", len(pts), "returned", len(ranked))
	return ranked, nil
}
