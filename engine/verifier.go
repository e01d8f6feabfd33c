package engine

import (
	"errors"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultMaxStaleness is the validity window for generated proofs; the
// chain enforces the same bound on submission.
const DefaultMaxStaleness = time.Hour

// Structural check failures.
var (
	ErrEmptyProofData     = errors.New("proof data is empty")
	ErrEmptyPublicInputs  = errors.New("public inputs are empty")
	ErrZeroCredentialHash = errors.New("credential hash is zero")
	ErrZeroNonce          = errors.New("nonce is zero")
	ErrProofStale         = errors.New("proof is older than the validity window")
	ErrProofFromFuture    = errors.New("proof timestamp is in the future")
)

// Verifier performs the client-side structural pre-check on proofs before
// submission. It is necessary but not sufficient: cryptographic
// verification happens on-chain or in a verifier service.
type Verifier struct {
	clk          clock.Clock
	maxStaleness time.Duration
}

func NewVerifier(clk clock.Clock, maxStaleness time.Duration) *Verifier {
	if clk == nil {
		clk = clock.New()
	}
	if maxStaleness <= 0 {
		maxStaleness = DefaultMaxStaleness
	}
	return &Verifier{clk: clk, maxStaleness: maxStaleness}
}

// Check reports the first structural defect found, or nil. Pure, no I/O.
func (v *Verifier) Check(p *Proof) error {
	if len(p.ProofData) == 0 {
		return ErrEmptyProofData
	}
	if len(p.PublicInputs) == 0 {
		return ErrEmptyPublicInputs
	}
	if p.CredentialHash.IsZero() {
		return ErrZeroCredentialHash
	}
	if p.Nonce.IsZero() {
		return ErrZeroNonce
	}

	now := v.clk.Now().Unix()
	if p.CreatedAt > now {
		return ErrProofFromFuture
	}
	if now-p.CreatedAt > int64(v.maxStaleness/time.Second) {
		return ErrProofStale
	}
	return nil
}

// CheckStructure is the boolean form of Check.
func (v *Verifier) CheckStructure(p *Proof) bool {
	return v.Check(p) == nil
}
