// Package selective is the generic disclosure circuit for custom proofs: it
// binds a disclosure bitmap and a MiMC root over per-field commitments to a
// hidden credential, without a statement tailored to the credential shape.
package selective

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	frmimc "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"

	"github.com/didwallet/zk-disclosure/common"
	"github.com/didwallet/zk-disclosure/prover"
)

const (
	CircuitID = "selective-disclosure"
	Version   = 1

	// MaxFields is the fixed witness width; schemas are padded to it.
	MaxFields = 8
)

// Private witness element names. Field commitments use FieldInput(i).
const (
	InputCredentialHash      = "credential_hash"
	InputIssuerSignatureHash = "issuer_signature_hash"
)

// FieldInput names the commitment slot for field index i.
func FieldInput(i int) string {
	return fmt.Sprintf("field_%d", i)
}

type Circuit struct {
	// Public inputs
	Bitmap             frontend.Variable `gnark:",public"`
	CredentialTypeHash frontend.Variable `gnark:",public"`
	FieldsRoot         frontend.Variable `gnark:",public"`

	// Private inputs
	FieldCommitments    [MaxFields]frontend.Variable `gnark:",secret"`
	CredentialHash      frontend.Variable            `gnark:",secret"`
	IssuerSignatureHash frontend.Variable            `gnark:",secret"`
}

func (c *Circuit) Define(api frontend.API) error {
	// The bitmap is a non-empty 64-bit value.
	common.AssertNonZero(api, c.Bitmap)
	api.ToBinary(c.Bitmap, 64)

	// The public root commits to every field slot, revealed or not.
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	for _, commitment := range c.FieldCommitments {
		h.Write(commitment)
	}
	api.AssertIsEqual(h.Sum(), c.FieldsRoot)

	common.AssertNonZero(api, c.CredentialTypeHash)
	common.AssertNonZero(api, c.CredentialHash)
	common.AssertNonZero(api, c.IssuerSignatureHash)
	return nil
}

func Template() frontend.Circuit {
	return &Circuit{}
}

// FieldsRoot computes, outside the circuit, the same MiMC root the circuit
// enforces: each 32-byte commitment is reduced into the BN254 scalar field
// and absorbed in slot order. Slots past the schema width stay zero.
func FieldsRoot(commitments [][32]byte) ([32]byte, error) {
	var root [32]byte
	if len(commitments) > MaxFields {
		return root, fmt.Errorf("%s: %d field commitments exceed the %d-slot witness", CircuitID, len(commitments), MaxFields)
	}

	h := frmimc.NewMiMC()
	for i := 0; i < MaxFields; i++ {
		var e fr.Element
		if i < len(commitments) {
			e.SetBytes(commitments[i][:])
		}
		b := e.Bytes()
		if _, err := h.Write(b[:]); err != nil {
			return root, fmt.Errorf("%s: fields root: %w", CircuitID, err)
		}
	}
	copy(root[:], h.Sum(nil))
	return root, nil
}

// Assign builds the witness assignment. Public input order: disclosure
// bitmap, credential type hash, fields root.
func Assign(public [][]byte, priv prover.PrivateInputs) (frontend.Circuit, error) {
	if len(public) != 3 {
		return nil, fmt.Errorf("%s: want 3 public inputs, got %d", CircuitID, len(public))
	}

	c := &Circuit{
		Bitmap:             common.BytesToElement(public[0]),
		CredentialTypeHash: common.BytesToElement(public[1]),
		FieldsRoot:         common.BytesToElement(public[2]),
	}

	for i := 0; i < MaxFields; i++ {
		v, ok := priv.Get(FieldInput(i))
		if !ok {
			return nil, fmt.Errorf("%s: missing private input %s", CircuitID, FieldInput(i))
		}
		// Reduce exactly the way FieldsRoot does.
		var e fr.Element
		e.SetBytes(v[:])
		c.FieldCommitments[i] = e.BigInt(new(big.Int))
	}

	credHash, ok := priv.Get(InputCredentialHash)
	if !ok {
		return nil, fmt.Errorf("%s: missing private input %s", CircuitID, InputCredentialHash)
	}
	sigHash, ok := priv.Get(InputIssuerSignatureHash)
	if !ok {
		return nil, fmt.Errorf("%s: missing private input %s", CircuitID, InputIssuerSignatureHash)
	}
	c.CredentialHash = common.BytesToElement(credHash[:])
	c.IssuerSignatureHash = common.BytesToElement(sigHash[:])

	return c, nil
}
