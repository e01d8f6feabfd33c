// Package disclosure validates selective-disclosure field sets and encodes
// them into the fixed-width bitmap carried inside proof public inputs.
package disclosure

import (
	"errors"
	"fmt"
	"sort"
)

const (
	// MaxRevealed caps the number of fields a single proof may reveal.
	// Larger sets produce degenerate proofs that reveal effectively
	// everything while still paying proving cost.
	MaxRevealed = 50

	// BitmapWidth is the number of field indices the bitmap can carry.
	// The bitmap is a uint64; credential types with more than 64 fields
	// would need a wider encoding.
	BitmapWidth = 64
)

var (
	// ErrEmptyDisclosure is returned for a disclosure set with no fields.
	ErrEmptyDisclosure = errors.New("disclosure set is empty")

	// ErrTooManyFields is returned when a set reveals more than MaxRevealed fields.
	ErrTooManyFields = fmt.Errorf("disclosure set exceeds %d fields", MaxRevealed)
)

// IndexOutOfRangeError reports a field index outside the credential schema.
type IndexOutOfRangeError struct {
	Index      int
	FieldCount int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("field index %d out of range [0, %d)", e.Index, e.FieldCount)
}

// FieldIndexTooLargeError reports an index that does not fit the bitmap.
type FieldIndexTooLargeError struct {
	Index int
}

func (e *FieldIndexTooLargeError) Error() string {
	return fmt.Sprintf("field index %d exceeds bitmap width %d", e.Index, BitmapWidth)
}

// Set is a set of revealed field indices. The zero value is an empty set.
type Set []int

// Validate checks the set against the schema's field count: it must be
// non-empty, contain no duplicates, reveal at most MaxRevealed fields, and
// every index must lie in [0, fieldCount).
func Validate(s Set, fieldCount int) error {
	if len(s) == 0 {
		return ErrEmptyDisclosure
	}
	if len(s) > MaxRevealed {
		return ErrTooManyFields
	}
	seen := make(map[int]struct{}, len(s))
	for _, idx := range s {
		if idx < 0 || idx >= fieldCount {
			return &IndexOutOfRangeError{Index: idx, FieldCount: fieldCount}
		}
		if _, dup := seen[idx]; dup {
			return fmt.Errorf("duplicate field index %d", idx)
		}
		seen[idx] = struct{}{}
	}
	return nil
}

// Bitmap is the canonical fixed-width encoding of a disclosure set: bit i is
// set iff field i is revealed.
type Bitmap uint64

// Encode builds the bitmap for a set. Indices beyond BitmapWidth cannot be
// represented and fail with FieldIndexTooLargeError.
func Encode(s Set) (Bitmap, error) {
	var b Bitmap
	for _, idx := range s {
		if idx < 0 || idx >= BitmapWidth {
			return 0, &FieldIndexTooLargeError{Index: idx}
		}
		b |= 1 << uint(idx)
	}
	return b, nil
}

// Decode is the exact inverse of Encode: it returns the revealed indices in
// ascending order.
func (b Bitmap) Decode() Set {
	s := make(Set, 0, 8)
	for i := 0; i < BitmapWidth; i++ {
		if b&(1<<uint(i)) != 0 {
			s = append(s, i)
		}
	}
	return s
}

// Count returns the number of revealed fields.
func (b Bitmap) Count() int {
	count := 0
	for i := 0; i < BitmapWidth; i++ {
		if b&(1<<uint(i)) != 0 {
			count++
		}
	}
	return count
}

// Sorted returns a copy of the set in ascending index order.
func (s Set) Sorted() Set {
	out := make(Set, len(s))
	copy(out, s)
	sort.Ints(out)
	return out
}

// PrivacyLevel is a coarse classification of how much a disclosure reveals.
// It is advisory only, for UI messaging; it is not a security guarantee.
type PrivacyLevel string

const (
	PrivacyHigh     PrivacyLevel = "High"
	PrivacyMedium   PrivacyLevel = "Medium"
	PrivacyStandard PrivacyLevel = "Standard"
)

// Privacy classifies a set by revealed-field count: at most 2 is High,
// at most 4 is Medium, anything more is Standard.
func Privacy(s Set) PrivacyLevel {
	switch {
	case len(s) <= 2:
		return PrivacyHigh
	case len(s) <= 4:
		return PrivacyMedium
	default:
		return PrivacyStandard
	}
}
