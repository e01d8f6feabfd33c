package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/didwallet/zk-disclosure/commitment"
	"github.com/didwallet/zk-disclosure/credential"
	"github.com/didwallet/zk-disclosure/engine"
)

func wellFormedProof(createdAt int64) engine.Proof {
	return engine.Proof{
		ProofType:      credential.ProofStudentStatus,
		ProofData:      []byte{1, 2, 3, 4},
		PublicInputs:   [][]byte{{5}, {6}},
		CredentialHash: credential.Hash(commitment.HashString("credential")),
		CreatedAt:      createdAt,
		Nonce:          credential.Hash(commitment.HashString("nonce")),
	}
}

func TestCheckAcceptsFreshProof(t *testing.T) {
	clk := testClock()
	v := engine.NewVerifier(clk, 0)

	p := wellFormedProof(testNow.Unix() - 10)
	assert.NoError(t, v.Check(&p))
	assert.True(t, v.CheckStructure(&p))
}

func TestCheckStructuralDefects(t *testing.T) {
	clk := testClock()
	v := engine.NewVerifier(clk, 0)

	p := wellFormedProof(testNow.Unix())
	p.ProofData = nil
	assert.ErrorIs(t, v.Check(&p), engine.ErrEmptyProofData)

	p = wellFormedProof(testNow.Unix())
	p.PublicInputs = nil
	assert.ErrorIs(t, v.Check(&p), engine.ErrEmptyPublicInputs)

	p = wellFormedProof(testNow.Unix())
	p.CredentialHash = credential.ZeroHash
	assert.ErrorIs(t, v.Check(&p), engine.ErrZeroCredentialHash)

	p = wellFormedProof(testNow.Unix())
	p.Nonce = credential.ZeroHash
	assert.ErrorIs(t, v.Check(&p), engine.ErrZeroNonce)
}

func TestCheckStaleness(t *testing.T) {
	clk := testClock()
	v := engine.NewVerifier(clk, 0)

	// Two hours old: past the one hour window.
	p := wellFormedProof(testNow.Unix() - 7200)
	assert.ErrorIs(t, v.Check(&p), engine.ErrProofStale)

	// Exactly at the window boundary is still accepted.
	p = wellFormedProof(testNow.Unix() - int64(engine.DefaultMaxStaleness/time.Second))
	assert.NoError(t, v.Check(&p))

	// One second past it is not.
	p = wellFormedProof(testNow.Unix() - int64(engine.DefaultMaxStaleness/time.Second) - 1)
	assert.ErrorIs(t, v.Check(&p), engine.ErrProofStale)
}

func TestCheckRejectsFutureProof(t *testing.T) {
	clk := testClock()
	v := engine.NewVerifier(clk, 0)

	p := wellFormedProof(testNow.Unix() + 60)
	assert.ErrorIs(t, v.Check(&p), engine.ErrProofFromFuture)
}

func TestCheckCustomWindow(t *testing.T) {
	clk := testClock()
	v := engine.NewVerifier(clk, 5*time.Minute)

	p := wellFormedProof(testNow.Unix() - 600)
	assert.ErrorIs(t, v.Check(&p), engine.ErrProofStale)

	p = wellFormedProof(testNow.Unix() - 200)
	assert.NoError(t, v.Check(&p))
}

func TestProofHashCoversEveryComponent(t *testing.T) {
	base := wellFormedProof(testNow.Unix())
	baseHash := base.Hash()

	mutated := base
	mutated.ProofData = []byte{9, 9, 9}
	assert.NotEqual(t, baseHash, mutated.Hash())

	mutated = base
	mutated.PublicInputs = [][]byte{{7}}
	assert.NotEqual(t, baseHash, mutated.Hash())

	mutated = base
	mutated.CredentialHash = credential.Hash(commitment.HashString("other"))
	assert.NotEqual(t, baseHash, mutated.Hash())

	mutated = base
	mutated.Nonce = credential.Hash(commitment.HashString("other-nonce"))
	assert.NotEqual(t, baseHash, mutated.Hash())

	// CreatedAt is metadata, not part of the replay key.
	mutated = base
	mutated.CreatedAt = base.CreatedAt + 100
	assert.Equal(t, baseHash, mutated.Hash())
}
