// Package commitment canonically encodes circuit inputs. Every value that
// becomes a public or private input - strings, timestamps, thresholds,
// hashes - is mapped to a fixed 32-byte element so the prover and verifier
// agree on the exact bytes. All functions are pure and deterministic.
package commitment

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// ElementSize is the width of a single encoded input element.
const ElementSize = 32

// HashString commits to a UTF-8 string with SHA-256.
func HashString(s string) [ElementSize]byte {
	return sha256.Sum256([]byte(s))
}

// HashBytes commits to a raw byte payload with SHA-256.
func HashBytes(b []byte) [ElementSize]byte {
	return sha256.Sum256(b)
}

// EncodeUint64 encodes an integer big-endian into the low bytes of a
// 32-byte element, the layout field-element libraries expect.
func EncodeUint64(v uint64) [ElementSize]byte {
	var out [ElementSize]byte
	binary.BigEndian.PutUint64(out[ElementSize-8:], v)
	return out
}

// EncodeBool encodes a flag as a 0/1 element.
func EncodeBool(v bool) [ElementSize]byte {
	var out [ElementSize]byte
	if v {
		out[ElementSize-1] = 1
	}
	return out
}

// DecodeHex decodes a hex-encoded 256-bit hash (with or without 0x prefix)
// into its raw 32 bytes.
func DecodeHex(s string) ([ElementSize]byte, error) {
	var out [ElementSize]byte
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return out, fmt.Errorf("invalid hex input: %w", err)
	}
	if len(raw) != ElementSize {
		return out, fmt.Errorf("invalid element length: got %d bytes, want %d", len(raw), ElementSize)
	}
	copy(out[:], raw)
	return out, nil
}

// IsZero reports whether an element is all zeroes.
func IsZero(e [ElementSize]byte) bool {
	for _, b := range e {
		if b != 0 {
			return false
		}
	}
	return true
}
