package ageabove_test

import (
	"testing"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/didwallet/zk-disclosure/circuits/ageabove"
	"github.com/didwallet/zk-disclosure/commitment"
	"github.com/didwallet/zk-disclosure/prover"
)

var now = uint64(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).Unix())

func witness(birthYearsAgo, thresholdYears uint64) ([][]byte, prover.PrivateInputs) {
	public := [][]byte{
		elem(commitment.EncodeUint64(now)),
		elem(commitment.EncodeUint64(thresholdYears)),
		elem(commitment.HashString("Age")),
	}

	priv := prover.NewPrivateInputs()
	priv.Set(ageabove.InputBirthTimestamp, commitment.EncodeUint64(now-birthYearsAgo*365*24*3600))
	priv.Set(ageabove.InputCredentialHash, commitment.HashString("credential"))
	priv.Set(ageabove.InputIssuerSignatureHash, commitment.HashString("signature"))
	return public, priv
}

func elem(e [32]byte) []byte { return e[:] }

func TestCircuitSolvesForAdult(t *testing.T) {
	public, priv := witness(30, 18)
	assignment, err := ageabove.Assign(public, priv)
	require.NoError(t, err)

	assert.NoError(t, test.IsSolved(ageabove.Template(), assignment, ecc.BN254.ScalarField()))
}

func TestCircuitRejectsUnderage(t *testing.T) {
	public, priv := witness(16, 18)
	assignment, err := ageabove.Assign(public, priv)
	require.NoError(t, err)

	assert.Error(t, test.IsSolved(ageabove.Template(), assignment, ecc.BN254.ScalarField()))
}

func TestCircuitRejectsFutureBirth(t *testing.T) {
	public, priv := witness(0, 18)
	priv.Set(ageabove.InputBirthTimestamp, commitment.EncodeUint64(now+3600))
	assignment, err := ageabove.Assign(public, priv)
	require.NoError(t, err)

	assert.Error(t, test.IsSolved(ageabove.Template(), assignment, ecc.BN254.ScalarField()))
}

func TestAssignValidation(t *testing.T) {
	public, priv := witness(30, 18)

	_, err := ageabove.Assign(public[:2], priv)
	assert.Error(t, err)

	incomplete := prover.NewPrivateInputs()
	_, err = ageabove.Assign(public, incomplete)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ageabove.InputBirthTimestamp)
}
