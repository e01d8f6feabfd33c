// Package prover defines the narrow contract between the proof engine and a
// proving backend. The backend is a black box: it receives a circuit id,
// canonical public inputs, the private witness material and a proving key,
// and returns opaque proof bytes. Backends may run in-process (gnark), call
// a native module, or answer deterministically for tests.
package prover

import (
	"context"
	"log/slog"
	"sort"
)

// ElementSize is the width of a single input element.
const ElementSize = 32

// PrivateInputs carries the witness values for a proof. It is opaque by
// construction: it renders as a redaction marker in logs and format verbs,
// and is never cached or serialized.
type PrivateInputs struct {
	values map[string][ElementSize]byte
}

// NewPrivateInputs returns an empty witness set.
func NewPrivateInputs() PrivateInputs {
	return PrivateInputs{values: make(map[string][ElementSize]byte)}
}

// Set stores a named witness element.
func (p PrivateInputs) Set(name string, value [ElementSize]byte) {
	p.values[name] = value
}

// Get returns a named witness element.
func (p PrivateInputs) Get(name string) ([ElementSize]byte, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Len returns the number of witness elements.
func (p PrivateInputs) Len() int {
	return len(p.values)
}

// Names returns the element names in sorted order. Values stay hidden.
func (p PrivateInputs) Names() []string {
	names := make([]string, 0, len(p.values))
	for name := range p.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p PrivateInputs) String() string {
	return "[redacted]"
}

// LogValue keeps witness material out of structured logs.
func (p PrivateInputs) LogValue() slog.Value {
	return slog.StringValue("[redacted]")
}

// Request is a single proof-generation request.
type Request struct {
	CircuitID    string
	PublicInputs [][]byte
	Private      PrivateInputs
	ProvingKey   []byte
}

// Response is a successful proving result. PublicInputs echoes the inputs
// the proof was generated against; backends that reorder or canonicalize
// inputs report the authoritative sequence here.
type Response struct {
	ProofBytes   []byte
	PublicInputs [][]byte
}

// Backend generates proofs. Prove must honor context cancellation and
// return promptly when the caller gives up; proof generation is expensive
// and is never retried by the engine.
type Backend interface {
	Prove(ctx context.Context, req Request) (Response, error)
}
