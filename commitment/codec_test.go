package commitment_test

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/didwallet/zk-disclosure/commitment"
)

func TestHashString(t *testing.T) {
	got := commitment.HashString("University of Ljubljana")
	want := sha256.Sum256([]byte("University of Ljubljana"))
	assert.Equal(t, want, got)

	// Distinct inputs must not collide on our test vectors.
	assert.NotEqual(t, got, commitment.HashString("University of Maribor"))
}

func TestEncodeUint64(t *testing.T) {
	e := commitment.EncodeUint64(0x0102030405060708)

	// High 24 bytes stay zero, value sits big-endian in the tail.
	for i := 0; i < commitment.ElementSize-8; i++ {
		assert.Zero(t, e[i], "byte %d", i)
	}
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, e[commitment.ElementSize-8:])

	assert.True(t, commitment.IsZero(commitment.EncodeUint64(0)))
}

func TestEncodeBool(t *testing.T) {
	yes := commitment.EncodeBool(true)
	assert.Equal(t, byte(1), yes[commitment.ElementSize-1])
	assert.True(t, commitment.IsZero(commitment.EncodeBool(false)))
}

func TestDecodeHex(t *testing.T) {
	raw := commitment.HashString("payload")
	plain := hex.EncodeToString(raw[:])

	for _, in := range []string{plain, "0x" + plain} {
		got, err := commitment.DecodeHex(in)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	}

	_, err := commitment.DecodeHex("0xzz")
	assert.Error(t, err)

	_, err = commitment.DecodeHex("0xdeadbeef")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length")
}
