// Package ageabove proves that a credential holder's age meets a threshold
// without revealing the date of birth.
package ageabove

import (
	"fmt"

	"github.com/consensys/gnark/frontend"

	"github.com/didwallet/zk-disclosure/common"
	"github.com/didwallet/zk-disclosure/prover"
)

const (
	CircuitID = "age-verification"
	Version   = 1
)

// Private witness element names.
const (
	InputBirthTimestamp      = "birth_timestamp"
	InputCredentialHash      = "credential_hash"
	InputIssuerSignatureHash = "issuer_signature_hash"
)

const (
	secondsPerYear = 365 * 24 * 3600
	// No valid date of birth is more than 150 years in the past.
	maxAgeSeconds = 150 * secondsPerYear
)

// Circuit proves current_timestamp - birth_timestamp >= threshold years.
type Circuit struct {
	// Public inputs
	CurrentTimestamp   frontend.Variable `gnark:",public"`
	AgeThresholdYears  frontend.Variable `gnark:",public"`
	CredentialTypeHash frontend.Variable `gnark:",public"`

	// Private inputs
	BirthTimestamp      frontend.Variable `gnark:",secret"`
	CredentialHash      frontend.Variable `gnark:",secret"`
	IssuerSignatureHash frontend.Variable `gnark:",secret"`
}

func (c *Circuit) Define(api frontend.API) error {
	common.AssertTimestampValid(api, c.BirthTimestamp, c.CurrentTimestamp, maxAgeSeconds)

	ageSeconds := api.Sub(c.CurrentTimestamp, c.BirthTimestamp)
	thresholdSeconds := api.Mul(c.AgeThresholdYears, secondsPerYear)
	api.AssertIsLessOrEqual(thresholdSeconds, ageSeconds)

	common.AssertNonZero(api, c.CredentialHash)
	common.AssertNonZero(api, c.IssuerSignatureHash)
	common.AssertNonZero(api, c.CredentialTypeHash)
	return nil
}

// Template returns an empty circuit for compilation.
func Template() frontend.Circuit {
	return &Circuit{}
}

// Assign builds a full witness assignment from canonical inputs. Public
// input order: current timestamp, age threshold years, credential type hash.
func Assign(public [][]byte, priv prover.PrivateInputs) (frontend.Circuit, error) {
	if len(public) != 3 {
		return nil, fmt.Errorf("%s: want 3 public inputs, got %d", CircuitID, len(public))
	}
	birth, ok := priv.Get(InputBirthTimestamp)
	if !ok {
		return nil, fmt.Errorf("%s: missing private input %s", CircuitID, InputBirthTimestamp)
	}
	credHash, ok := priv.Get(InputCredentialHash)
	if !ok {
		return nil, fmt.Errorf("%s: missing private input %s", CircuitID, InputCredentialHash)
	}
	sigHash, ok := priv.Get(InputIssuerSignatureHash)
	if !ok {
		return nil, fmt.Errorf("%s: missing private input %s", CircuitID, InputIssuerSignatureHash)
	}

	return &Circuit{
		CurrentTimestamp:    common.BytesToElement(public[0]),
		AgeThresholdYears:   common.BytesToElement(public[1]),
		CredentialTypeHash:  common.BytesToElement(public[2]),
		BirthTimestamp:      common.BytesToElement(birth[:]),
		CredentialHash:      common.BytesToElement(credHash[:]),
		IssuerSignatureHash: common.BytesToElement(sigHash[:]),
	}, nil
}
