package common

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
)

// AssertNonZero constrains v != 0. Used on every hash input so the all-zero
// placeholder can never satisfy a circuit.
func AssertNonZero(api frontend.API, v frontend.Variable) {
	api.AssertIsDifferent(v, 0)
}

// AssertTimestampValid constrains ts to [now - maxAgeSeconds, now]:
// not in the future and not older than the window.
func AssertTimestampValid(api frontend.API, ts, now frontend.Variable, maxAgeSeconds uint64) {
	// ts <= now first, so the age below cannot wrap in the field.
	api.AssertIsLessOrEqual(ts, now)
	age := api.Sub(now, ts)
	api.AssertIsLessOrEqual(age, frontend.Variable(maxAgeSeconds))
}

// AssertWithinRange constrains min <= v <= max.
func AssertWithinRange(api frontend.API, v frontend.Variable, min, max uint64) {
	api.AssertIsLessOrEqual(frontend.Variable(min), v)
	api.AssertIsLessOrEqual(v, frontend.Variable(max))
}

// BytesToElement interprets a big-endian encoded input element as the
// integer assigned to a circuit variable. Witness creation reduces it into
// the scalar field, which is the same reduction a verifier applies.
func BytesToElement(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
