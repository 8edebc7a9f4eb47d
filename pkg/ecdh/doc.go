// Package ecdh exposes toy elliptic-curve arithmetic over y^2 = x^3 + ax + b
// mod p and a Diffie-Hellman demonstration built on it.
//
// The free functions (EnumeratePoints, Add, ScalarMultiply, OrderOf,
// RankByOrder) take curve parameters as *big.Int values and are meant for
// small, hand-picked moduli:
//
//	a, b, p := big.NewInt(2), big.NewInt(2), big.NewInt(17)
//	pts, err := ecdh.EnumeratePoints(a, b, p) // 18 affine points
//
// Exchange runs a complete exchange between two parties:
//
//	c, _ := ecdh.NewCurveInt64(2, 2, 17)
//	g := ecdh.NewPointInt64(5, 1)
//	res, err := ecdh.NewExchange(c).Run(ctx, ecdh.Params{
//	    Generator: &g,
//	    M:         big.NewInt(3),
//	    N:         big.NewInt(7),
//	})
//	// res.Agreed and res.Confirmed are both true.
//
// Nothing in this package is constant time and curve parameters are not
// validated for security. It is for teaching, not for protecting secrets.
package ecdh
