package commitment

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"fmt"
)

// SaltSize is the length of the decommitment in bytes.
const SaltSize = 32

// Commitment is a hash commitment
// C = SHA256(len(label) || label || salt || len(m1) || m1 || ...), each length
// an 8-byte big-endian integer.
type Commitment struct {
	C []byte // commitment, safe to publish
	D []byte // decommitment salt, revealed on opening
}

// New commits to the concatenation of parts under label. Each part is length
// prefixed, so ("ab", "c") and ("a", "bc") commit to different values.
func New(label string, parts ...[]byte) (*Commitment, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("read salt: %w", err)
	}
	return &Commitment{C: digest(label, salt, parts), D: salt}, nil
}

// Verify reports whether c opens to parts with salt d under label.
func Verify(label string, c, d []byte, parts ...[]byte) bool {
	if len(c) != sha256.Size || len(d) != SaltSize {
		return false
	}
	return subtle.ConstantTimeCompare(c, digest(label, d, parts)) == 1
}

func digest(label string, salt []byte, parts [][]byte) []byte {
	h := sha256.New()
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(label)))
	h.Write(n[:])
	h.Write([]byte(label))
	h.Write(salt)
	for _, p := range parts {
		binary.BigEndian.PutUint64(n[:], uint64(len(p)))
		h.Write(n[:])
		h.Write(p)
	}
	return h.Sum(nil)
}
