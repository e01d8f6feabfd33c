package credential

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Hash is a 256-bit value rendered as 0x-prefixed hex, matching the H256
// representation used by the credential chain.
type Hash [32]byte

// ZeroHash is the all-zero hash, used as the "unset" sentinel.
var ZeroHash Hash

// ParseHash parses a 64-character hex string, with or without the 0x prefix.
func ParseHash(s string) (Hash, error) {
	var h Hash
	s = strings.TrimPrefix(s, "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("invalid hash encoding: %w", err)
	}
	if len(raw) != len(h) {
		return h, fmt.Errorf("invalid hash length: got %d bytes, want %d", len(raw), len(h))
	}
	copy(h[:], raw)
	return h, nil
}

func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// IsZero reports whether the hash is the all-zero value.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

func (h Hash) Bytes() []byte {
	out := make([]byte, len(h))
	copy(out, h[:])
	return out
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(data []byte) error {
	parsed, err := ParseHash(string(data))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Type classifies the credential's subject matter.
type Type string

const (
	TypeEducation  Type = "Education"
	TypeHealth     Type = "Health"
	TypeEmployment Type = "Employment"
	TypeAge        Type = "Age"
	TypeAddress    Type = "Address"
	TypeCustom     Type = "Custom"
)

// Status is the lifecycle state of a credential. Transitions are driven by
// the chain (revocation, expiry); the wallet only reads them.
type Status string

const (
	StatusActive    Status = "Active"
	StatusRevoked   Status = "Revoked"
	StatusExpired   Status = "Expired"
	StatusSuspended Status = "Suspended"
)

// ProofType names the statement shape a proof is generated for.
type ProofType string

const (
	ProofAgeAbove          ProofType = "AgeAbove"
	ProofStudentStatus     ProofType = "StudentStatus"
	ProofVaccinationStatus ProofType = "VaccinationStatus"
	ProofEmploymentStatus  ProofType = "EmploymentStatus"
	ProofCustom            ProofType = "Custom"
)

// ProofTypeFor returns the proof type a credential type naturally maps to.
// Address-shaped and custom credentials fall through to the Custom proof.
func ProofTypeFor(t Type) ProofType {
	switch t {
	case TypeEducation:
		return ProofStudentStatus
	case TypeHealth:
		return ProofVaccinationStatus
	case TypeEmployment:
		return ProofEmploymentStatus
	case TypeAge:
		return ProofAgeAbove
	default:
		return ProofCustom
	}
}

// Compatible reports whether a proof type can be generated over a credential
// of the given type. The Custom proof accepts any credential; the typed
// proofs require the matching credential shape.
func Compatible(p ProofType, t Type) bool {
	if p == ProofCustom {
		return true
	}
	return ProofTypeFor(t) == p
}

// Credential is the wallet's read-only copy of an on-chain credential.
// Fields holds the plaintext field values in catalog order; they never leave
// the wallet un-hashed.
type Credential struct {
	Subject      Hash     `json:"subject"`
	Issuer       Hash     `json:"issuer"`
	Type         Type     `json:"credential_type"`
	DataHash     Hash     `json:"data_hash"`
	IssuedAt     int64    `json:"issued_at"`
	ExpiresAt    int64    `json:"expires_at"` // unix seconds, 0 = no expiry
	Status       Status   `json:"status"`
	Signature    Hash     `json:"signature"`
	MetadataHash Hash     `json:"metadata_hash"`
	Fields       []string `json:"fields,omitempty"`
}

// Expired reports whether the credential's validity window has passed.
// A zero ExpiresAt means the credential never expires.
func (c *Credential) Expired(now time.Time) bool {
	return c.ExpiresAt != 0 && now.Unix() > c.ExpiresAt
}

// Field returns the plaintext value at the given catalog index, or the empty
// string when the wallet copy does not carry that field.
func (c *Credential) Field(index int) string {
	if index < 0 || index >= len(c.Fields) {
		return ""
	}
	return c.Fields[index]
}
