// Package vaccination proves a minimum vaccination dose count without
// revealing patient identity, dates or batch numbers.
package vaccination

import (
	"fmt"

	"github.com/consensys/gnark/frontend"

	"github.com/didwallet/zk-disclosure/common"
	"github.com/didwallet/zk-disclosure/prover"
)

const (
	CircuitID = "vaccination-status"
	Version   = 1
)

// Private witness element names.
const (
	InputPatientIDHash       = "patient_id_hash"
	InputVaccinationDate     = "vaccination_date"
	InputExpiryDate          = "expiry_date"
	InputDosesReceived       = "doses_received"
	InputBatchNumberHash     = "batch_number_hash"
	InputCredentialHash      = "credential_hash"
	InputIssuerSignatureHash = "issuer_signature_hash"
)

const maxDoses = 255

type Circuit struct {
	// Public inputs
	CurrentTimestamp    frontend.Variable `gnark:",public"`
	VaccinationTypeHash frontend.Variable `gnark:",public"`
	MinDosesRequired    frontend.Variable `gnark:",public"`

	// Private inputs
	PatientIDHash       frontend.Variable `gnark:",secret"`
	VaccinationDate     frontend.Variable `gnark:",secret"`
	ExpiryDate          frontend.Variable `gnark:",secret"`
	DosesReceived       frontend.Variable `gnark:",secret"`
	BatchNumberHash     frontend.Variable `gnark:",secret"`
	CredentialHash      frontend.Variable `gnark:",secret"`
	IssuerSignatureHash frontend.Variable `gnark:",secret"`
}

func (c *Circuit) Define(api frontend.API) error {
	// Vaccinated in the past, immunity still valid.
	api.AssertIsLessOrEqual(c.VaccinationDate, c.CurrentTimestamp)
	api.AssertIsLessOrEqual(c.CurrentTimestamp, c.ExpiryDate)

	// Received at least the required number of doses.
	common.AssertWithinRange(api, c.DosesReceived, 0, maxDoses)
	api.AssertIsLessOrEqual(c.MinDosesRequired, c.DosesReceived)

	common.AssertNonZero(api, c.PatientIDHash)
	common.AssertNonZero(api, c.VaccinationTypeHash)
	common.AssertNonZero(api, c.BatchNumberHash)
	common.AssertNonZero(api, c.CredentialHash)
	common.AssertNonZero(api, c.IssuerSignatureHash)
	return nil
}

func Template() frontend.Circuit {
	return &Circuit{}
}

// Assign builds the witness assignment. Public input order: current
// timestamp, vaccination type hash, minimum doses required.
func Assign(public [][]byte, priv prover.PrivateInputs) (frontend.Circuit, error) {
	if len(public) != 3 {
		return nil, fmt.Errorf("%s: want 3 public inputs, got %d", CircuitID, len(public))
	}

	c := &Circuit{
		CurrentTimestamp:    common.BytesToElement(public[0]),
		VaccinationTypeHash: common.BytesToElement(public[1]),
		MinDosesRequired:    common.BytesToElement(public[2]),
	}

	for _, in := range []struct {
		name string
		dst  *frontend.Variable
	}{
		{InputPatientIDHash, &c.PatientIDHash},
		{InputVaccinationDate, &c.VaccinationDate},
		{InputExpiryDate, &c.ExpiryDate},
		{InputDosesReceived, &c.DosesReceived},
		{InputBatchNumberHash, &c.BatchNumberHash},
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
