package nonce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/didwallet/zk-disclosure/nonce"
)

func TestGenerateUnique(t *testing.T) {
	trials := 1_000_000
	if testing.Short() {
		trials = 512
	}

	seen := make(map[[nonce.Size]byte]struct{}, trials)
	var zero [nonce.Size]byte
	for i := 0; i < trials; i++ {
		n, err := nonce.Generate()
		require.NoError(t, err)
		if n == zero {
			t.Fatalf("zero nonce after %d draws", i)
		}

		if _, dup := seen[n]; dup {
			t.Fatalf("nonce collision after %d draws", i)
		}
		seen[n] = struct{}{}
	}
	assert.Len(t, seen, trials)
}
