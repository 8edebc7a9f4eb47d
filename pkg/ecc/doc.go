// Package ecc holds the error taxonomy shared by the toy curve arithmetic.
//
// Every package in the module returns these sentinels (possibly wrapped), so
// callers match them with errors.Is:
//
//	_, err := ecdh.ScalarMultiply(g, k, a, p)
//	if errors.Is(err, ecc.ErrInvalidScalar) {
//	    // negative k
//	}
//
// ErrUnboundedOrder is a signal rather than a failure: the order search saw a
// point cycle back to itself without passing through the identity, and the
// caller is expected to skip or flag that point.
package ecc
