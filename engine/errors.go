package engine

import (
	"errors"
	"fmt"

	"github.com/didwallet/zk-disclosure/credential"
)

// Sentinel errors. Input and state errors are surfaced for correction and
// never retried; infrastructure errors are retryable by the caller.
var (
	// ErrCredentialExpired reports a credential past its expiry.
	ErrCredentialExpired = errors.New("credential has expired")

	// ErrProofTimeout reports that the prover did not answer within the
	// configured deadline. The caller may retry; the engine never does.
	ErrProofTimeout = errors.New("proof generation timed out")
)

// CredentialNotActiveError reports a credential whose status forbids proofs.
type CredentialNotActiveError struct {
	Status credential.Status
}

func (e *CredentialNotActiveError) Error() string {
	return fmt.Sprintf("credential is not active: status %s", e.Status)
}

// IncompatibleProofTypeError reports a proof type that cannot be generated
// over the credential's type.
type IncompatibleProofTypeError struct {
	ProofType      credential.ProofType
	CredentialType credential.Type
}

func (e *IncompatibleProofTypeError) Error() string {
	return fmt.Sprintf("proof type %s is not compatible with %s credentials", e.ProofType, e.CredentialType)
}

// InvalidFieldValueError reports a credential field that could not be
// encoded into a circuit input.
type InvalidFieldValueError struct {
	Index int
	Name  string
	Cause string
}

func (e *InvalidFieldValueError) Error() string {
	return fmt.Sprintf("invalid value for field %d (%s): %s", e.Index, e.Name, e.Cause)
}

// ProvingKeyUnavailableError reports a circuit whose proving key could not
// be resolved. Not retryable without operator intervention.
type ProvingKeyUnavailableError struct {
	CircuitID string
	Err       error
}

func (e *ProvingKeyUnavailableError) Error() string {
	return fmt.Sprintf("proving key unavailable for circuit %s: %v", e.CircuitID, e.Err)
}

func (e *ProvingKeyUnavailableError) Unwrap() error { return e.Err }

// GenerationFailedError reports a prover failure. Retryable by the caller
// with a fresh request; re-proving is expensive, so the engine itself never
// retries.
type GenerationFailedError struct {
	CircuitID string
	Err       error
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("proof generation failed for circuit %s: %v", e.CircuitID, e.Err)
}

func (e *GenerationFailedError) Unwrap() error { return e.Err }
