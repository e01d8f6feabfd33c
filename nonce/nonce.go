// Package nonce produces the single-use 256-bit values that make each proof
// unique on the replay-protection key.
package nonce

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"
)

// Size is the nonce width in bytes.
const Size = 32

// Generate returns a fresh 256-bit nonce: SHA-256 over a high-resolution
// timestamp concatenated with 32 bytes from the operating system CSPRNG.
// The timestamp alone never determines the value, so nonces are not
// predictable; the random component makes collisions negligible.
func Generate() ([Size]byte, error) {
	var buf [8 + Size]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(time.Now().UnixNano()))
	if _, err := rand.Read(buf[8:]); err != nil {
		return [Size]byte{}, fmt.Errorf("nonce entropy unavailable: %w", err)
	}
	return sha256.Sum256(buf[:]), nil
}
