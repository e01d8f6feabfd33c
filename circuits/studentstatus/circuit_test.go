package studentstatus_test

import (
	"testing"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/didwallet/zk-disclosure/circuits/studentstatus"
	"github.com/didwallet/zk-disclosure/commitment"
	"github.com/didwallet/zk-disclosure/prover"
)

var now = uint64(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).Unix())

func witness(enrollment, expiry, gpa uint64) ([][]byte, prover.PrivateInputs) {
	nowElem := commitment.EncodeUint64(now)
	institution := commitment.HashString("University of Ljubljana")
	active := commitment.EncodeBool(true)
	public := [][]byte{nowElem[:], institution[:], active[:]}

	priv := prover.NewPrivateInputs()
	priv.Set(studentstatus.InputStudentIDHash, commitment.HashString("S-2023-0042"))
	priv.Set(studentstatus.InputEnrollmentDate, commitment.EncodeUint64(enrollment))
	priv.Set(studentstatus.InputExpiryDate, commitment.EncodeUint64(expiry))
	priv.Set(studentstatus.InputGPA, commitment.EncodeUint64(gpa))
	priv.Set(studentstatus.InputCredentialHash, commitment.HashString("credential"))
	priv.Set(studentstatus.InputIssuerSignatureHash, commitment.HashString("signature"))
	return public, priv
}

func TestCircuitSolvesForEnrolledStudent(t *testing.T) {
	public, priv := witness(now-86400*180, now+86400*180, 385)
	assignment, err := studentstatus.Assign(public, priv)
	require.NoError(t, err)

	assert.NoError(t, test.IsSolved(studentstatus.Template(), assignment, ecc.BN254.ScalarField()))
}

func TestCircuitRejectsLapsedEnrollment(t *testing.T) {
	public, priv := witness(now-86400*720, now-86400, 385)
	assignment, err := studentstatus.Assign(public, priv)
	require.NoError(t, err)

	assert.Error(t, test.IsSolved(studentstatus.Template(), assignment, ecc.BN254.ScalarField()))
}

func TestCircuitRejectsImplausibleGPA(t *testing.T) {
	public, priv := witness(now-86400*180, now+86400*180, 401)
	assignment, err := studentstatus.Assign(public, priv)
	require.NoError(t, err)

	assert.Error(t, test.IsSolved(studentstatus.Template(), assignment, ecc.BN254.ScalarField()))
}
