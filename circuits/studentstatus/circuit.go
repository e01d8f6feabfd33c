// Package studentstatus proves active enrollment at a named institution
// while keeping the student identifier, enrollment dates and GPA hidden.
package studentstatus

import (
	"fmt"

	"github.com/consensys/gnark/frontend"

	"github.com/didwallet/zk-disclosure/common"
	"github.com/didwallet/zk-disclosure/prover"
)

const (
	CircuitID = "student-status"
	Version   = 1
)

// Private witness element names.
const (
	InputStudentIDHash       = "student_id_hash"
	InputEnrollmentDate      = "enrollment_date"
	InputExpiryDate          = "expiry_date"
	InputGPA                 = "gpa"
	InputCredentialHash      = "credential_hash"
	InputIssuerSignatureHash = "issuer_signature_hash"
)

// GPA is carried in hundredths; 4.00 is the usual ceiling.
const maxGPAHundredths = 400

type Circuit struct {
	// Public inputs
	CurrentTimestamp frontend.Variable `gnark:",public"`
	InstitutionHash  frontend.Variable `gnark:",public"`
	StatusActive     frontend.Variable `gnark:",public"` // 1 = active, 0 = inactive

	// Private inputs
	StudentIDHash       frontend.Variable `gnark:",secret"`
	EnrollmentDate      frontend.Variable `gnark:",secret"`
	ExpiryDate          frontend.Variable `gnark:",secret"`
	GPA                 frontend.Variable `gnark:",secret"`
	CredentialHash      frontend.Variable `gnark:",secret"`
	IssuerSignatureHash frontend.Variable `gnark:",secret"`
}

func (c *Circuit) Define(api frontend.API) error {
	// Enrollment started in the past and has not lapsed.
	api.AssertIsLessOrEqual(c.EnrollmentDate, c.CurrentTimestamp)
	api.AssertIsLessOrEqual(c.CurrentTimestamp, c.ExpiryDate)

	// The claimed status flag is boolean.
	api.AssertIsBoolean(c.StatusActive)

	common.AssertWithinRange(api, c.GPA, 0, maxGPAHundredths)
	common.AssertNonZero(api, c.StudentIDHash)
	common.AssertNonZero(api, c.InstitutionHash)
	common.AssertNonZero(api, c.CredentialHash)
	common.AssertNonZero(api, c.IssuerSignatureHash)
	return nil
}

func Template() frontend.Circuit {
	return &Circuit{}
}

// Assign builds the witness assignment. Public input order: current
// timestamp, institution hash, active flag.
func Assign(public [][]byte, priv prover.PrivateInputs) (frontend.Circuit, error) {
	if len(public) != 3 {
		return nil, fmt.Errorf("%s: want 3 public inputs, got %d", CircuitID, len(public))
	}

	c := &Circuit{
		CurrentTimestamp: common.BytesToElement(public[0]),
		InstitutionHash:  common.BytesToElement(public[1]),
		StatusActive:     common.BytesToElement(public[2]),
	}

	for _, in := range []struct {
		name string
		dst  *frontend.Variable
	}{
		{InputStudentIDHash, &c.StudentIDHash},
		{InputEnrollmentDate, &c.EnrollmentDate},
		{InputExpiryDate, &c.ExpiryDate},
		{InputGPA, &c.GPA},
		{InputCredentialHash, &c.CredentialHash},
		{InputIssuerSignatureHash, &c.IssuerSignatureHash},
	} {
		v, ok := priv.Get(in.name)
		if !ok {
			return nil, fmt.Errorf("%s: missing private input %s", CircuitID, in.name)
		}
		*in.dst = common.BytesToElement(v[:])
	}

	return c, nil
}
