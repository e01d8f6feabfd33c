package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benbjohnson/clock"

	"github.com/didwallet/zk-disclosure/circuits/ageabove"
	"github.com/didwallet/zk-disclosure/circuits/employment"
	"github.com/didwallet/zk-disclosure/circuits/selective"
	"github.com/didwallet/zk-disclosure/circuits/studentstatus"
	"github.com/didwallet/zk-disclosure/circuits/vaccination"
	"github.com/didwallet/zk-disclosure/commitment"
	"github.com/didwallet/zk-disclosure/credential"
	"github.com/didwallet/zk-disclosure/disclosure"
	"github.com/didwallet/zk-disclosure/prover"
	"github.com/didwallet/zk-disclosure/schema"
)

// Params carries the per-proof-type thresholds a verifier asks for.
type Params struct {
	// AgeThresholdYears is the age bound for AgeAbove proofs. Zero means
	// the default of 18.
	AgeThresholdYears uint64 `json:"age_threshold_years,omitempty"`
	// MinDosesRequired is the dose bound for VaccinationStatus proofs.
	// Zero means 1.
	MinDosesRequired uint64 `json:"min_doses_required,omitempty"`
}

const (
	defaultAgeThresholdYears = 18
	defaultMinDoses          = 1
)

// Request asks for one proof over one credential.
type Request struct {
	Credential credential.Credential `json:"credential"`
	Disclose   disclosure.Set        `json:"fields_to_reveal"`
	ProofType  credential.ProofType  `json:"proof_type"`
	Params     Params                `json:"params"`
}

// CircuitInputs is the validated, fully encoded input tuple for the prover.
type CircuitInputs struct {
	CircuitID    string
	PublicInputs [][]byte
	Private      prover.PrivateInputs
	Bitmap       disclosure.Bitmap
}

// Builder validates requests and assembles circuit inputs. Validation is
// fail-fast: credential status, then expiry, then the disclosure set, then
// proof-type compatibility, then field encoding.
type Builder struct {
	clk clock.Clock
}

func NewBuilder(clk clock.Clock) *Builder {
	if clk == nil {
		clk = clock.New()
	}
	return &Builder{clk: clk}
}

// Build validates the request and produces the circuit input tuple.
func (b *Builder) Build(req *Request) (*CircuitInputs, error) {
	cred := &req.Credential

	if cred.Status != credential.StatusActive {
		return nil, &CredentialNotActiveError{Status: cred.Status}
	}
	now := b.clk.Now()
	if cred.Expired(now) {
		return nil, ErrCredentialExpired
	}
	if err := disclosure.Validate(req.Disclose, schema.FieldCount(cred.Type)); err != nil {
		return nil, err
	}
	if !credential.Compatible(req.ProofType, cred.Type) {
		return nil, &IncompatibleProofTypeError{ProofType: req.ProofType, CredentialType: cred.Type}
	}
	bitmap, err := disclosure.Encode(req.Disclose)
	if err != nil {
		return nil, err
	}

	nowUnix := uint64(now.Unix())
	var inputs *CircuitInputs
	switch req.ProofType {
	case credential.ProofAgeAbove:
		inputs, err = b.ageAboveInputs(cred, req.Params, nowUnix)
	case credential.ProofStudentStatus:
		inputs, err = b.studentStatusInputs(cred, nowUnix)
	case credential.ProofVaccinationStatus:
		inputs, err = b.vaccinationInputs(cred, req.Params, nowUnix)
	case credential.ProofEmploymentStatus:
		inputs, err = b.employmentInputs(cred, nowUnix)
	case credential.ProofCustom:
		inputs, err = b.customInputs(cred, bitmap)
	default:
		return nil, &IncompatibleProofTypeError{ProofType: req.ProofType, CredentialType: cred.Type}
	}
	if err != nil {
		return nil, err
	}

	inputs.Bitmap = bitmap
	return inputs, nil
}

func (b *Builder) ageAboveInputs(cred *credential.Credential, params Params, now uint64) (*CircuitInputs, error) {
	threshold := params.AgeThresholdYears
	if threshold == 0 {
		threshold = defaultAgeThresholdYears
	}

	birth, err := uintField(cred, 0)
	if err != nil {
		return nil, err
	}

	priv := prover.NewPrivateInputs()
	priv.Set(ageabove.InputBirthTimestamp, commitment.EncodeUint64(birth))
	priv.Set(ageabove.InputCredentialHash, cred.DataHash)
	priv.Set(ageabove.InputIssuerSignatureHash, cred.Signature)

	return &CircuitInputs{
		CircuitID: ageabove.CircuitID,
		PublicInputs: elements(
			commitment.EncodeUint64(now),
			commitment.EncodeUint64(threshold),
			commitment.HashString(string(cred.Type)),
		),
		Private: priv,
	}, nil
}

func (b *Builder) studentStatusInputs(cred *credential.Credential, now uint64) (*CircuitInputs, error) {
	enrollment, err := uintField(cred, 4)
	if err != nil {
		return nil, err
	}
	expiry, err := uintField(cred, 5)
	if err != nil {
		return nil, err
	}
	gpa, err := uintField(cred, 6)
	if err != nil {
		return nil, err
	}

	priv := prover.NewPrivateInputs()
	priv.Set(studentstatus.InputStudentIDHash, commitment.HashString(cred.Field(3)))
	priv.Set(studentstatus.InputEnrollmentDate, commitment.EncodeUint64(enrollment))
	priv.Set(studentstatus.InputExpiryDate, commitment.EncodeUint64(expiry))
	priv.Set(studentstatus.InputGPA, commitment.EncodeUint64(gpa))
	priv.Set(studentstatus.InputCredentialHash, cred.DataHash)
	priv.Set(studentstatus.InputIssuerSignatureHash, cred.Signature)

	return &CircuitInputs{
		CircuitID: studentstatus.CircuitID,
		PublicInputs: elements(
			commitment.EncodeUint64(now),
			commitment.HashString(cred.Field(0)),
			commitment.EncodeBool(activeStatus(cred.Field(2))),
		),
		Private: priv,
	}, nil
}

func (b *Builder) vaccinationInputs(cred *credential.Credential, params Params, now uint64) (*CircuitInputs, error) {
	minDoses := params.MinDosesRequired
	if minDoses == 0 {
		minDoses = defaultMinDoses
	}

	doses, err := uintField(cred, 2)
	if err != nil {
		return nil, err
	}
	vaccinated, err := uintField(cred, 3)
	if err != nil {
		return nil, err
	}
	expiry, err := uintField(cred, 4)
	if err != nil {
		return nil, err
	}

	priv := prover.NewPrivateInputs()
	priv.Set(vaccination.InputPatientIDHash, commitment.HashString(cred.Field(0)))
	priv.Set(vaccination.InputVaccinationDate, commitment.EncodeUint64(vaccinated))
	priv.Set(vaccination.InputExpiryDate, commitment.EncodeUint64(expiry))
	priv.Set(vaccination.InputDosesReceived, commitment.EncodeUint64(doses))
	priv.Set(vaccination.InputBatchNumberHash, commitment.HashString(cred.Field(5)))
	priv.Set(vaccination.InputCredentialHash, cred.DataHash)
	priv.Set(vaccination.InputIssuerSignatureHash, cred.Signature)

	return &CircuitInputs{
		CircuitID: vaccination.CircuitID,
		PublicInputs: elements(
			commitment.EncodeUint64(now),
			commitment.HashString(cred.Field(1)),
			commitment.EncodeUint64(minDoses),
		),
		Private: priv,
	}, nil
}

func (b *Builder) employmentInputs(cred *credential.Credential, now uint64) (*CircuitInputs, error) {
	start, err := uintField(cred, 4)
	if err != nil {
		return nil, err
	}
	end, err := uintField(cred, 5)
	if err != nil {
		return nil, err
	}
	salary, err := uintField(cred, 6)
	if err != nil {
		return nil, err
	}

	priv := prover.NewPrivateInputs()
	priv.Set(employment.InputEmployeeIDHash, commitment.HashString(cred.Field(3)))
	priv.Set(employment.InputStartDate, commitment.EncodeUint64(start))
	priv.Set(employment.InputEndDate, commitment.EncodeUint64(end))
	priv.Set(employment.InputSalary, commitment.EncodeUint64(salary))
	priv.Set(employment.InputPositionHash, commitment.HashString(cred.Field(1)))
	priv.Set(employment.InputCredentialHash, cred.DataHash)
	priv.Set(employment.InputIssuerSignatureHash, cred.Signature)

	return &CircuitInputs{
		CircuitID: employment.CircuitID,
		PublicInputs: elements(
			commitment.EncodeUint64(now),
			commitment.HashString(cred.Field(0)),
			commitment.HashString(cred.Field(2)),
		),
		Private: priv,
	}, nil
}

func (b *Builder) customInputs(cred *credential.Credential, bitmap disclosure.Bitmap) (*CircuitInputs, error) {
	fieldCount := schema.FieldCount(cred.Type)
	if fieldCount > selective.MaxFields {
		return nil, fmt.Errorf("credential type %s has %d fields, circuit supports %d", cred.Type, fieldCount, selective.MaxFields)
	}

	commitments := make([][32]byte, fieldCount)
	priv := prover.NewPrivateInputs()
	for i := 0; i < selective.MaxFields; i++ {
		var c [32]byte
		if i < fieldCount {
			c = commitment.HashString(cred.Field(i))
			commitments[i] = c
		}
		priv.Set(selective.FieldInput(i), c)
	}
	priv.Set(selective.InputCredentialHash, cred.DataHash)
	priv.Set(selective.InputIssuerSignatureHash, cred.Signature)

	root, err := selective.FieldsRoot(commitments)
	if err != nil {
		return nil, err
	}

	return &CircuitInputs{
		CircuitID: selective.CircuitID,
		PublicInputs: elements(
			commitment.EncodeUint64(uint64(bitmap)),
			commitment.HashString(string(cred.Type)),
			root,
		),
		Private: priv,
	}, nil
}

// uintField parses a numeric credential field. An absent or empty field
// encodes as zero; a malformed one is an input error.
func uintField(cred *credential.Credential, index int) (uint64, error) {
	raw := strings.TrimSpace(cred.Field(index))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, &InvalidFieldValueError{
			Index: index,
			Name:  schema.FieldName(cred.Type, index),
			Cause: "not an unsigned integer",
		}
	}
	return v, nil
}

func activeStatus(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "active", "true", "1":
		return true
	default:
		return false
	}
}

func elements(in ...[32]byte) [][]byte {
	out := make([][]byte, len(in))
	for i := range in {
		e := in[i]
		out[i] = e[:]
	}
	return out
}
