package prover

import (
	"context"
	"crypto/sha256"
	"sync"
	"time"
)

// MockProofSize is the size of proofs emitted by the mock backend, matching
// the compressed Groth16 proof size on BN254.
const MockProofSize = 192

// Mock is a deterministic in-memory backend for tests and development
// builds. The same request always yields the same proof bytes, so callers
// can assert on replay behavior; uniqueness of real proofs comes from the
// engine's nonce, not from the backend.
type Mock struct {
	mu    sync.Mutex
	calls int

	// Err, when set, is returned from every Prove call.
	Err error
	// Delay, when set, makes Prove wait before answering, or return the
	// context error if the caller gives up first.
	Delay time.Duration
}

func (m *Mock) Prove(ctx context.Context, req Request) (Response, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Response{}, ctx.Err()
		case <-timer.C:
		}
	}

	if m.Err != nil {
		return Response{}, m.Err
	}

	// Expand a digest of the request into MockProofSize bytes by chained
	// hashing. Private inputs contribute only through a digest, mirroring
	// how a real proof commits to the witness without revealing it.
	h := sha256.New()
	h.Write([]byte(req.CircuitID))
	for _, input := range req.PublicInputs {
		h.Write(input)
	}
	for _, name := range req.Private.Names() {
		v, _ := req.Private.Get(name)
		h.Write([]byte(name))
		h.Write(v[:])
	}
	seed := h.Sum(nil)

	proof := make([]byte, 0, MockProofSize)
	block := sha256.Sum256(seed)
	for len(proof) < MockProofSize {
		proof = append(proof, block[:]...)
		block = sha256.Sum256(block[:])
	}

	return Response{
		ProofBytes:   proof[:MockProofSize],
		PublicInputs: req.PublicInputs,
	}, nil
}

// Calls reports how many times Prove has been invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
