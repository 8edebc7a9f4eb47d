package commitment

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-toy-ecdh/internal/crypto/curves"
)

const label = "key-confirmation"

func TestCommitment(t *testing.T) {
	msg := []byte("shared point")

	comm, err := New(label, msg)
	require.NoError(t, err)
	assert.Len(t, comm.C, 32)
	assert.Len(t, comm.D, SaltSize)
	assert.True(t, Verify(label, comm.C, comm.D, msg))

	other, err := New(label, msg)
	require.NoError(t, err)
	assert.NotEqual(t, comm.C, other.C, "salt must randomize the commitment")
}

func TestCommitmentVerifyFailed(t *testing.T) {
	msg := []byte("secret")
	comm, err := New(label, msg)
	require.NoError(t, err)

	t.Run("wrong message", func(t *testing.T) {
		assert.False(t, Verify(label, comm.C, comm.D, []byte("other")))
	})

	t.Run("wrong salt", func(t *testing.T) {
		d := append([]byte(nil), comm.D...)
		d[0] ^= 0xff
		assert.False(t, Verify(label, comm.C, d, msg))
	})

	t.Run("wrong commitment", func(t *testing.T) {
		c := append([]byte(nil), comm.C...)
		c[0] ^= 0xff
		assert.False(t, Verify(label, c, comm.D, msg))
	})

	t.Run("wrong label", func(t *testing.T) {
		assert.False(t, Verify("other", comm.C, comm.D, msg))
	})

	t.Run("bad lengths", func(t *testing.T) {
		assert.False(t, Verify(label, comm.C[:16], comm.D, msg))
		assert.False(t, Verify(label, comm.C, nil, msg))
	})
}

func TestCommitmentPartsAreFramed(t *testing.T) {
	comm, err := New(label, []byte("ab"), []byte("c"))
	require.NoError(t, err)
	assert.True(t, Verify(label, comm.C, comm.D, []byte("ab"), []byte("c")))
	assert.False(t, Verify(label, comm.C, comm.D, []byte("a"), []byte("bc")))
	assert.False(t, Verify(label, comm.C, comm.D, []byte("abc")))
}

func TestCommitmentLayout(t *testing.T) {
	comm, err := New("ab", []byte("xyz"))
	require.NoError(t, err)

	var buf []byte
	buf = append(buf, 0, 0, 0, 0, 0, 0, 0, 2)
	buf = append(buf, "ab"...)
	buf = append(buf, comm.D...)
	buf = append(buf, 0, 0, 0, 0, 0, 0, 0, 3)
	buf = append(buf, "xyz"...)
	want := sha256.Sum256(buf)
	assert.Equal(t, want[:], comm.C)
}

func TestCommitToSharedPoint(t *testing.T) {
	c, err := curves.NewInt64(2, 2, 17)
	require.NoError(t, err)
	g := curves.NewPointInt64(5, 1)

	r, err := c.Double(g)
	require.NoError(t, err)
	s, err := c.Add(g, g)
	require.NoError(t, err)

	comm, err := New(label, c.Encode(r))
	require.NoError(t, err)
	assert.True(t, Verify(label, comm.C, comm.D, c.Encode(s)))
	assert.False(t, Verify(label, comm.C, comm.D, c.Encode(g)))
}
