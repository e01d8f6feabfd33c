// Package employment proves current employment at a named company without
// revealing the employee identifier, salary or position.
package employment

import (
	"fmt"

	"github.com/consensys/gnark/frontend"

	"github.com/didwallet/zk-disclosure/common"
	"github.com/didwallet/zk-disclosure/prover"
)

const (
	CircuitID = "employment-status"
	Version   = 1
)

// Private witness element names.
const (
	InputEmployeeIDHash      = "employee_id_hash"
	InputStartDate           = "start_date"
	InputEndDate             = "end_date"
	InputSalary              = "salary"
	InputPositionHash        = "position_hash"
	InputCredentialHash      = "credential_hash"
	InputIssuerSignatureHash = "issuer_signature_hash"
)

type Circuit struct {
	// Public inputs
	CurrentTimestamp   frontend.Variable `gnark:",public"`
	CompanyHash        frontend.Variable `gnark:",public"`
	EmploymentTypeHash frontend.Variable `gnark:",public"`

	// Private inputs
	EmployeeIDHash      frontend.Variable `gnark:",secret"`
	StartDate           frontend.Variable `gnark:",secret"`
	EndDate             frontend.Variable `gnark:",secret"` // 0 = open-ended
	Salary              frontend.Variable `gnark:",secret"`
	PositionHash        frontend.Variable `gnark:",secret"`
	CredentialHash      frontend.Variable `gnark:",secret"`
	IssuerSignatureHash frontend.Variable `gnark:",secret"`
}

func (c *Circuit) Define(api frontend.API) error {
	// Employment started in the past.
	api.AssertIsLessOrEqual(c.StartDate, c.CurrentTimestamp)

	// Either open-ended (end = 0) or the end date has not passed:
	// end * (end - now clamped below) == 0 is expressed via a selector.
	ended := api.IsZero(c.EndDate)
	// When EndDate is set, require now <= EndDate. The comparison operand
	// is swapped to a constant satisfied bound when EndDate is zero.
	bound := api.Select(ended, c.CurrentTimestamp, c.EndDate)
	api.AssertIsLessOrEqual(c.CurrentTimestamp, bound)

	common.AssertNonZero(api, c.EmployeeIDHash)
	common.AssertNonZero(api, c.CompanyHash)
	common.AssertNonZero(api, c.EmploymentTypeHash)
	common.AssertNonZero(api, c.PositionHash)
	common.AssertNonZero(api, c.CredentialHash)
	common.AssertNonZero(api, c.IssuerSignatureHash)
	return nil
}

func Template() frontend.Circuit {
	return &Circuit{}
}

// Assign builds the witness assignment. Public input order: current
// timestamp, company hash, employment type hash.
func Assign(public [][]byte, priv prover.PrivateInputs) (frontend.Circuit, error) {
	if len(public) != 3 {
		return nil, fmt.Errorf("%s: want 3 public inputs, got %d", CircuitID, len(public))
	}

	c := &Circuit{
		CurrentTimestamp:   common.BytesToElement(public[0]),
		CompanyHash:        common.BytesToElement(public[1]),
		EmploymentTypeHash: common.BytesToElement(public[2]),
	}

	for _, in := range []struct {
		name string
		dst  *frontend.Variable
	}{
		{InputEmployeeIDHash, &c.EmployeeIDHash},
		{InputStartDate, &c.StartDate},
		{InputEndDate, &c.EndDate},
		{InputSalary, &c.Salary},
		{InputPositionHash, &c.PositionHash},
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
