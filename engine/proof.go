package engine

import (
	"encoding/base64"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"github.com/didwallet/zk-disclosure/credential"
)

// Proof is the assembled, immutable proof object handed to the caller for
// on-chain submission or QR transport. It logically expires MaxStaleness
// after CreatedAt and must not be accepted afterwards.
type Proof struct {
	ProofType      credential.ProofType `json:"proof_type"`
	ProofData      []byte               `json:"proof_data"`
	PublicInputs   [][]byte             `json:"public_inputs"`
	CredentialHash credential.Hash      `json:"credential_hash"`
	CreatedAt      int64                `json:"created_at"`
	Nonce          credential.Hash      `json:"nonce"`
}

// Hash computes the proof's 256-bit replay-protection key:
// BLAKE2b-256 over proofData ‖ publicInputs ‖ credentialHash ‖ nonce,
// matching the commitment the chain stores for verified proofs.
func (p *Proof) Hash() credential.Hash {
	h, _ := blake2b.New256(nil)
	h.Write(p.ProofData)
	for _, input := range p.PublicInputs {
		h.Write(input)
	}
	h.Write(p.CredentialHash[:])
	h.Write(p.Nonce[:])

	var out credential.Hash
	copy(out[:], h.Sum(nil))
	return out
}

// ProofDataBase64 renders the opaque proof bytes for transport.
func (p *Proof) ProofDataBase64() string {
	return base64.StdEncoding.EncodeToString(p.ProofData)
}

// PublicInputsHex renders the public input sequence for transport.
func (p *Proof) PublicInputsHex() []string {
	out := make([]string, len(p.PublicInputs))
	for i, input := range p.PublicInputs {
		out[i] = "0x" + hex.EncodeToString(input)
	}
	return out
}
