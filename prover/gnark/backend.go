// Package gnark is the in-process Groth16 proving backend over the wallet's
// disclosure circuits.
package gnark

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"

	"github.com/didwallet/zk-disclosure/common"
	"github.com/didwallet/zk-disclosure/prover"
)

// Backend proves with gnark/Groth16 on BN254. Constraint systems are loaded
// from a setup directory when one is configured and compiled in-memory
// otherwise; either way they are memoized per circuit.
type Backend struct {
	dir string

	mu      sync.Mutex
	systems map[string]constraint.ConstraintSystem
}

// NewBackend returns a backend reading compiled constraint systems from
// dir. An empty dir compiles circuits on first use, which is convenient in
// tests but slow on first proof.
func NewBackend(dir string) *Backend {
	return &Backend{
		dir:     dir,
		systems: make(map[string]constraint.ConstraintSystem),
	}
}

func (b *Backend) constraintSystem(spec CircuitSpec) (constraint.ConstraintSystem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cs, ok := b.systems[spec.ID]; ok {
		return cs, nil
	}

	if b.dir != "" {
		ccsPath, _, _ := common.SetupPaths(b.dir, spec.ID, spec.Version)
		cs, err := common.LoadConstraintSystem(ccsPath)
		if err == nil {
			b.systems[spec.ID] = cs
			return cs, nil
		}
	}

	cs, err := common.Compile(spec.Template())
	if err != nil {
		return nil, fmt.Errorf("circuit %s: %w", spec.ID, err)
	}
	b.systems[spec.ID] = cs
	return cs, nil
}

// Prove generates a Groth16 proof for the request. The heavy proving step
// runs on its own goroutine so the call returns as soon as the caller's
// context is cancelled or times out.
func (b *Backend) Prove(ctx context.Context, req prover.Request) (prover.Response, error) {
	spec, ok := Circuits[req.CircuitID]
	if !ok {
		return prover.Response{}, fmt.Errorf("unknown circuit %q", req.CircuitID)
	}
	if len(req.ProvingKey) == 0 {
		return prover.Response{}, fmt.Errorf("circuit %s: empty proving key", req.CircuitID)
	}

	cs, err := b.constraintSystem(spec)
	if err != nil {
		return prover.Response{}, err
	}

	pk := groth16.NewProvingKey(ecc.BN254)
	if _, err := pk.ReadFrom(bytes.NewReader(req.ProvingKey)); err != nil {
		return prover.Response{}, fmt.Errorf("circuit %s: invalid proving key: %w", req.CircuitID, err)
	}

	assignment, err := spec.Assign(req.PublicInputs, req.Private)
	if err != nil {
		return prover.Response{}, err
	}

	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return prover.Response{}, fmt.Errorf("circuit %s: witness creation failed: %w", req.CircuitID, err)
	}

	type proveResult struct {
		proof groth16.Proof
		err   error
	}
	done := make(chan proveResult, 1)
	go func() {
		proof, err := groth16.Prove(cs, pk, witness)
		done <- proveResult{proof: proof, err: err}
	}()

	select {
	case <-ctx.Done():
		return prover.Response{}, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return prover.Response{}, fmt.Errorf("circuit %s: proving failed: %w", req.CircuitID, res.err)
		}
		var buf bytes.Buffer
		if _, err := res.proof.WriteTo(&buf); err != nil {
			return prover.Response{}, fmt.Errorf("circuit %s: proof serialization failed: %w", req.CircuitID, err)
		}
		return prover.Response{
			ProofBytes:   buf.Bytes(),
			PublicInputs: req.PublicInputs,
		}, nil
	}
}
