package vaccination_test

import (
	"testing"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/didwallet/zk-disclosure/circuits/vaccination"
	"github.com/didwallet/zk-disclosure/commitment"
	"github.com/didwallet/zk-disclosure/prover"
)

var now = uint64(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).Unix())

func witness(doses, minDoses uint64) ([][]byte, prover.PrivateInputs) {
	nowElem := commitment.EncodeUint64(now)
	vaccType := commitment.HashString("covid-19-mrna")
	min := commitment.EncodeUint64(minDoses)
	public := [][]byte{nowElem[:], vaccType[:], min[:]}

	priv := prover.NewPrivateInputs()
	priv.Set(vaccination.InputPatientIDHash, commitment.HashString("patient-7"))
	priv.Set(vaccination.InputVaccinationDate, commitment.EncodeUint64(now-86400*90))
	priv.Set(vaccination.InputExpiryDate, commitment.EncodeUint64(now+86400*180))
	priv.Set(vaccination.InputDosesReceived, commitment.EncodeUint64(doses))
	priv.Set(vaccination.InputBatchNumberHash, commitment.HashString("B-2026-X"))
	priv.Set(vaccination.InputCredentialHash, commitment.HashString("credential"))
	priv.Set(vaccination.InputIssuerSignatureHash, commitment.HashString("signature"))
	return public, priv
}

func TestCircuitSolvesForSufficientDoses(t *testing.T) {
	public, priv := witness(3, 2)
	assignment, err := vaccination.Assign(public, priv)
	require.NoError(t, err)

	assert.NoError(t, test.IsSolved(vaccination.Template(), assignment, ecc.BN254.ScalarField()))
}

func TestCircuitRejectsInsufficientDoses(t *testing.T) {
	public, priv := witness(1, 2)
	assignment, err := vaccination.Assign(public, priv)
	require.NoError(t, err)

	assert.Error(t, test.IsSolved(vaccination.Template(), assignment, ecc.BN254.ScalarField()))
}

func TestCircuitRejectsExpiredImmunity(t *testing.T) {
	public, priv := witness(3, 2)
	priv.Set(vaccination.InputExpiryDate, commitment.EncodeUint64(now-86400))
	assignment, err := vaccination.Assign(public, priv)
	require.NoError(t, err)

	assert.Error(t, test.IsSolved(vaccination.Template(), assignment, ecc.BN254.ScalarField()))
}
