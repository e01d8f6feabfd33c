// Package transport encodes proofs and credential references into the JSON
// payload carried by wallet QR codes. Payloads expire client-side after a
// short window, independent of the proof's own validity window, so a
// displayed code cannot be replayed from a screenshot much later.
package transport

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/didwallet/zk-disclosure/credential"
)

// TTL is the client-side payload lifetime.
const TTL = 120 * time.Second

// PayloadType discriminates what a QR code references.
type PayloadType string

const (
	PayloadProof      PayloadType = "proof"
	PayloadCredential PayloadType = "credential"
)

// Payload is the QR wire format.
type Payload struct {
	Type         PayloadType     `json:"type"`
	CredentialID credential.Hash `json:"credentialId"`
	ProofHash    credential.Hash `json:"proofHash"`
	Timestamp    int64           `json:"timestamp"`
}

// NewProofPayload builds a payload presenting a proof to a verifier.
func NewProofPayload(credentialID, proofHash credential.Hash, now time.Time) Payload {
	return Payload{
		Type:         PayloadProof,
		CredentialID: credentialID,
		ProofHash:    proofHash,
		Timestamp:    now.Unix(),
	}
}

// NewCredentialPayload builds a payload referencing a credential itself.
func NewCredentialPayload(credentialID credential.Hash, now time.Time) Payload {
	return Payload{
		Type:         PayloadCredential,
		CredentialID: credentialID,
		Timestamp:    now.Unix(),
	}
}

// Encode renders the payload as the JSON the scanner expects.
func (p Payload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// Decode parses and validates a scanned payload.
func Decode(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("invalid payload: %w", err)
	}
	switch p.Type {
	case PayloadProof, PayloadCredential:
	default:
		return Payload{}, fmt.Errorf("unknown payload type %q", p.Type)
	}
	if p.Type == PayloadProof && p.ProofHash.IsZero() {
		return Payload{}, fmt.Errorf("proof payload without proof hash")
	}
	return p, nil
}

// Expired reports whether the payload is past its display window.
func (p Payload) Expired(now time.Time) bool {
	age := now.Unix() - p.Timestamp
	return age < 0 || age > int64(TTL/time.Second)
}
