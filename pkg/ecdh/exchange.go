package ecdh

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/smallyu/go-toy-ecdh/internal/crypto/commitment"
	"github.com/smallyu/go-toy-ecdh/internal/crypto/order"
	"github.com/smallyu/go-toy-ecdh/internal/crypto/points"
	"github.com/smallyu/go-toy-ecdh/pkg/ecc"
	"github.com/smallyu/go-toy-ecdh/pkg/logging"
)

// DefaultCandidates is how many ranked generator candidates Candidates keeps.
const DefaultCandidates = 50

const confirmationLabel = "toy-ecdh/key-confirmation/v1"

// Params are the caller's choices for one exchange.
type Params struct {
	// Generator is the shared base point. When nil, groups with a standard
	// base point use it and all others use the highest order candidate.
	Generator *Point
	// M and N are the private scalars of the two parties. When nil, groups
	// that can draw random scalars do so.
	M, N *big.Int
}

// Result is the outcome of an exchange. A and B are the public keys, R and S
// the shared secrets computed by each side.
type Result struct {
	Curve     string `json:"curve"`
	Generator Point  `json:"generator"`
	// GeneratorOrder is 0 when it was not computed.
	GeneratorOrder uint64   `json:"generatorOrder"`
	A              Point    `json:"a"`
	B              Point    `json:"b"`
	R              Point    `json:"r"`
	S              Point    `json:"s"`
	Agreed         bool     `json:"agreed"`
	Confirmed      bool     `json:"confirmed"`
	Candidates     []Ranked `json:"candidates,omitempty"`
}

// Exchange runs Diffie-Hellman on a Group.
type Exchange struct {
	group      Group
	logger     logging.Logger
	enumerator *points.Enumerator
	analyzer   *order.Analyzer
	candidates int
}

// Option configures an Exchange.
type Option func(*Exchange)

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(e *Exchange) { e.logger = l }
}

// WithEnumerator replaces the point enumerator.
func WithEnumerator(en *points.Enumerator) Option {
	return func(e *Exchange) { e.enumerator = en }
}

// WithAnalyzer replaces the order analyzer.
func WithAnalyzer(a *order.Analyzer) Option {
	return func(e *Exchange) { e.analyzer = a }
}

// WithCandidates sets how many candidates Candidates returns. Values below 1
// return all of them.
func WithCandidates(n int) Option {
	return func(e *Exchange) { e.candidates = n }
}

// NewExchange creates an Exchange on g.
func NewExchange(g Group, opts ...Option) *Exchange {
	e := &Exchange{group: g, candidates: DefaultCandidates}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.Nop()
	}
	if e.enumerator == nil {
		e.enumerator = points.NewEnumerator(points.WithLogger(e.logger))
	}
	if e.analyzer == nil {
		e.analyzer = order.NewAnalyzer(order.WithLogger(e.logger))
	}
	return e
}

// Group returns the group the exchange runs on.
func (e *Exchange) Group() Group {
	return e.group
}

// Candidates enumerates the curve and ranks its points by descending order.
func (e *Exchange) Candidates(ctx context.Context) ([]Ranked, error) {
	c := e.group.Curve()
	pts, err := e.enumerator.Enumerate(c)
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", e.group.Name(), err)
	}
	ranked, err := e.analyzer.RankByOrder(c, pts, e.candidates)
	if err != nil {
		return nil, fmt.Errorf("rank %s: %w", e.group.Name(), err)
	}
	e.logger.Debug(ctx, "ranked generator candidates", "curve", e.group.Name(), "points", len(pts), "kept", len(ranked))
	return ranked, nil
}

// Run performs one exchange: A = mG, B = nG, R = mB and S = nA. Agreed
// reports R = S. Confirmed reports that a commitment to R opens against S.
func (e *Exchange) Run(ctx context.Context, params Params) (*Result, error) {
	log := e.logger.With("curve", e.group.Name())
	if e.group.Curve().IsSingular() {
		log.Warn(ctx, "curve is singular, its points do not form a group")
	}

	res := &Result{Curve: e.group.Name()}
	if err := e.pickGenerator(ctx, params.Generator, res); err != nil {
		return nil, err
	}
	if res.Generator.IsInfinity() {
		log.Warn(ctx, "generator is the point at infinity")
	}

	m, err := e.scalar(params.M, "m")
	if err != nil {
		return nil, err
	}
	n, err := e.scalar(params.N, "n")
	if err != nil {
		return nil, err
	}
	log.Debug(ctx, "private scalars chosen", logging.Redacted("m"), logging.Redacted("n"))

	if res.A, err = e.group.ScalarMult(res.Generator, m); err != nil {
		return nil, fmt.Errorf("public key A: %w", err)
	}
	if res.B, err = e.group.ScalarMult(res.Generator, n); err != nil {
		return nil, fmt.Errorf("public key B: %w", err)
	}
	if res.R, err = e.group.ScalarMult(res.B, m); err != nil {
		return nil, fmt.Errorf("shared secret R: %w", err)
	}
	if res.S, err = e.group.ScalarMult(res.A, n); err != nil {
		return nil, fmt.Errorf("shared secret S: %w", err)
	}
	res.Agreed = res.R.Equal(res.S)

	if res.Confirmed, err = e.confirm(res.R, res.S); err != nil {
		return nil, err
	}
	if res.R.IsInfinity() {
		log.Warn(ctx, "shared secret is the point at infinity")
	}

	log.Info(ctx, "exchange finished",
		"generator", res.Generator.String(),
		"generatorOrder", res.GeneratorOrder,
		"A", res.A.String(),
		"B", res.B.String(),
		"agreed", res.Agreed,
		"confirmed", res.Confirmed,
	)
	return res, nil
}

func (e *Exchange) pickGenerator(ctx context.Context, g *Point, res *Result) error {
	if g != nil {
		if !e.group.IsOnCurve(*g) {
			return fmt.Errorf("generator %s on %s: %w", g, e.group.Name(), ecc.ErrPointNotOnCurve)
		}
		// Reduce the coordinates; adding O is the identity.
		pt, err := e.group.Add(*g, Infinity())
		if err != nil {
			return err
		}
		res.Generator = pt
		res.GeneratorOrder, err = e.orderOf(ctx, pt)
		return err
	}

	if bp, ok := e.group.(interface{ BasePoint() Point }); ok {
		res.Generator = bp.BasePoint()
		return nil
	}

	ranked, err := e.Candidates(ctx)
	if err != nil {
		return err
	}
	if len(ranked) == 0 {
		return fmt.Errorf("%s: %w", e.group.Name(), ecc.ErrNoPoints)
	}
	res.Candidates = ranked
	res.Generator = ranked[0].Point
	res.GeneratorOrder = ranked[0].Order
	return nil
}

// orderOf computes the order of g on curves small enough to enumerate and
// returns 0 otherwise.
func (e *Exchange) orderOf(ctx context.Context, g Point) (uint64, error) {
	p := e.group.Curve().P()
	if !p.IsUint64() || p.Uint64() > e.enumerator.MaxModulus() {
		return 0, nil
	}
	n, err := e.analyzer.Of(e.group.Curve(), g)
	if errors.Is(err, ecc.ErrUnboundedOrder) {
		e.logger.Warn(ctx, "generator order is unbounded", "generator", g.String())
		return 0, nil
	}
	return n, err
}

func (e *Exchange) scalar(k *big.Int, name string) (*big.Int, error) {
	if k != nil {
		if k.Sign() < 0 {
			return nil, fmt.Errorf("scalar %s: %w", name, ecc.ErrInvalidScalar)
		}
		return k, nil
	}
	if gen, ok := e.group.(interface{ NewScalar() (*big.Int, error) }); ok {
		return gen.NewScalar()
	}
	return nil, fmt.Errorf("scalar %s missing: %w", name, ecc.ErrInvalidScalar)
}

func (e *Exchange) confirm(r, s Point) (bool, error) {
	c := e.group.Curve()
	comm, err := commitment.New(confirmationLabel, c.Encode(r))
	if err != nil {
		return false, fmt.Errorf("commit to shared secret: %w", err)
	}
	return commitment.Verify(confirmationLabel, comm.C, comm.D, c.Encode(s)), nil
}
