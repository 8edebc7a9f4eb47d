package benchmark

import (
	"context"
	"fmt"
	"math/big"
	"testing"

	"github.com/smallyu/go-toy-ecdh/internal/crypto/curves"
	"github.com/smallyu/go-toy-ecdh/internal/crypto/field"
	"github.com/smallyu/go-toy-ecdh/internal/crypto/order"
	"github.com/smallyu/go-toy-ecdh/internal/crypto/points"
	"github.com/smallyu/go-toy-ecdh/pkg/ecdh"
)

// Moduli of increasing size, all prime.
var moduli = []int64{101, 1009, 4099}

func mustCurve(b *testing.B, p int64) *curves.Curve {
	b.Helper()
	c, err := curves.NewInt64(2, 3, p)
	if err != nil {
		b.Fatal(err)
	}
	return c
}

func BenchmarkEnumerate(b *testing.B) {
	for _, p := range moduli {
		c := mustCurve(b, p)
		for _, workers := range []int{1, 4} {
			b.Run(fmt.Sprintf("p=%d/workers=%d", p, workers), func(b *testing.B) {
				cache, err := field.NewResidueCache(1)
				if err != nil {
					b.Fatal(err)
				}
				e := points.NewEnumerator(points.WithCache(cache), points.WithWorkers(workers))
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if _, err := e.Enumerate(c); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkRankByOrder(b *testing.B) {
	for _, p := range moduli[:2] {
		c := mustCurve(b, p)
		pts, err := points.NewEnumerator().Enumerate(c)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(fmt.Sprintf("p=%d", p), func(b *testing.B) {
			a := order.NewAnalyzer()
			for i := 0; i < b.N; i++ {
				if _, err := a.RankByOrder(c, pts, ecdh.DefaultCandidates); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkScalarMult(b *testing.B) {
	toy := mustCurve(b, 4099)
	pts, err := points.NewEnumerator().Enumerate(toy)
	if err != nil {
		b.Fatal(err)
	}
	k := big.NewInt(4001)

	b.Run("toy", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := toy.ScalarMult(pts[0], k); err != nil {
				b.Fatal(err)
			}
		}
	})

	s := curves.NewSecp256k1()
	g := s.BasePoint()
	n, err := s.NewScalar()
	if err != nil {
		b.Fatal(err)
	}

	b.Run("secp256k1/generic", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := s.Curve().ScalarMult(g, n); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("secp256k1/decred", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := s.ScalarMult(g, n); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkExchange(b *testing.B) {
	c := mustCurve(b, 1009)
	ex := ecdh.NewExchange(c, ecdh.WithCandidates(1))
	params := ecdh.Params{M: big.NewInt(123), N: big.NewInt(456)}
	for i := 0; i < b.N; i++ {
		if _, err := ex.Run(context.Background(), params); err != nil {
			b.Fatal(err)
		}
	}
}
