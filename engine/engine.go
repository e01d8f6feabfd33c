// Package engine is the selective-disclosure proof pipeline: it validates a
// proof request, encodes circuit inputs, resolves the proving key, invokes
// the prover backend, and assembles the final proof object with its
// replay-protection nonce and content hash.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
	"golang.org/x/sync/singleflight"

	"github.com/didwallet/zk-disclosure/credential"
	"github.com/didwallet/zk-disclosure/keycache"
	"github.com/didwallet/zk-disclosure/nonce"
	"github.com/didwallet/zk-disclosure/prover"
)

// DefaultProveTimeout bounds a single prover invocation. Proof generation
// takes seconds on real circuits; anything beyond this is treated as hung.
const DefaultProveTimeout = 2 * time.Minute

// Config wires an Engine's collaborators. Backend and Keys are required;
// the rest default sensibly.
type Config struct {
	Backend prover.Backend
	Keys    *keycache.Cache

	Clock        clock.Clock
	Logger       *slog.Logger
	ProveTimeout time.Duration
}

// Engine generates proofs. It is safe for concurrent use; duplicate
// in-flight requests for the same (credential, disclosure, proof type,
// params) are coalesced into one prover invocation.
type Engine struct {
	builder *Builder
	backend prover.Backend
	keys    *keycache.Cache
	clk     clock.Clock
	log     *slog.Logger
	timeout time.Duration

	group singleflight.Group
}

func New(cfg Config) (*Engine, error) {
	if cfg.Backend == nil {
		return nil, errors.New("engine: prover backend is required")
	}
	if cfg.Keys == nil {
		return nil, errors.New("engine: proving key cache is required")
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	timeout := cfg.ProveTimeout
	if timeout <= 0 {
		timeout = DefaultProveTimeout
	}
	return &Engine{
		builder: NewBuilder(clk),
		backend: cfg.Backend,
		keys:    cfg.Keys,
		clk:     clk,
		log:     log,
		timeout: timeout,
	}, nil
}

// Result is a generated proof together with its replay-protection hash.
type Result struct {
	Proof     Proof           `json:"proof"`
	ProofHash credential.Hash `json:"proof_hash"`
}

// Generate runs the full pipeline for one request. Validation failures
// surface before any prover work; prover failures are not retried here.
func (e *Engine) Generate(ctx context.Context, req *Request) (*Result, error) {
	inputs, err := e.builder.Build(req)
	if err != nil {
		return nil, err
	}

	// One in-flight generation per (credential, disclosure, proof type,
	// params). Concurrent duplicates share the winner's result and nonce
	// instead of paying for a second proof; requests that differ in any
	// proof parameter assert different statements and never coalesce.
	key := fmt.Sprintf("%s|%s|%d|%d|%d",
		req.Credential.DataHash, req.ProofType, inputs.Bitmap,
		req.Params.AgeThresholdYears, req.Params.MinDosesRequired)
	v, err, shared := e.group.Do(key, func() (any, error) {
		return e.generate(ctx, req, inputs)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		e.log.Debug("coalesced duplicate proof request", "circuit", inputs.CircuitID)
	}
	return v.(*Result), nil
}

func (e *Engine) generate(ctx context.Context, req *Request, inputs *CircuitInputs) (*Result, error) {
	provingKey, err := e.keys.Get(ctx, inputs.CircuitID)
	if err != nil {
		return nil, &ProvingKeyUnavailableError{CircuitID: inputs.CircuitID, Err: err}
	}

	proveCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := e.clk.Now()
	resp, err := e.backend.Prove(proveCtx, prover.Request{
		CircuitID:    inputs.CircuitID,
		PublicInputs: inputs.PublicInputs,
		Private:      inputs.Private,
		ProvingKey:   provingKey,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("circuit %s: %w", inputs.CircuitID, ErrProofTimeout)
		}
		return nil, &GenerationFailedError{CircuitID: inputs.CircuitID, Err: err}
	}
	e.log.Info("proof generated",
		"circuit", inputs.CircuitID,
		"proof_type", req.ProofType,
		"revealed_fields", len(req.Disclose),
		"duration_ms", e.clk.Since(start).Milliseconds(),
	)

	n, err := nonce.Generate()
	if err != nil {
		return nil, &GenerationFailedError{CircuitID: inputs.CircuitID, Err: err}
	}

	publicInputs := resp.PublicInputs
	if publicInputs == nil {
		publicInputs = inputs.PublicInputs
	}

	proof := Proof{
		ProofType:      req.ProofType,
		ProofData:      resp.ProofBytes,
		PublicInputs:   publicInputs,
		CredentialHash: req.Credential.DataHash,
		CreatedAt:      e.clk.Now().Unix(),
		Nonce:          credential.Hash(n),
	}
	return &Result{Proof: proof, ProofHash: proof.Hash()}, nil
}
