package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// SetupPaths returns the on-disk locations of a compiled circuit's
// constraint system, proving key and verifying key.
func SetupPaths(dir, circuitID string, version uint) (ccsPath, pkPath, vkPath string) {
	base := fmt.Sprintf("%s-%d", circuitID, version)
	return filepath.Join(dir, base+".ccs"),
		filepath.Join(dir, base+".pk"),
		filepath.Join(dir, base+".vk")
}

// Compile compiles a circuit template into its BN254 constraint system.
func Compile(template frontend.Circuit) (constraint.ConstraintSystem, error) {
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, template)
	if err != nil {
		return nil, fmt.Errorf("circuit compilation failed: %w", err)
	}
	return ccs, nil
}

// SetupAndSave compiles a circuit, runs the Groth16 setup, and writes the
// constraint system and both keys next to each other in dir.
func SetupAndSave(template frontend.Circuit, dir, circuitID string, version uint) error {
	ccs, err := Compile(template)
	if err != nil {
		return err
	}

	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return fmt.Errorf("groth16 setup failed: %w", err)
	}

	ccsPath, pkPath, vkPath := SetupPaths(dir, circuitID, version)
	if err := writeTo(ccsPath, ccs); err != nil {
		return err
	}
	if err := writeTo(pkPath, pk); err != nil {
		return err
	}
	return writeTo(vkPath, vk)
}

// LoadConstraintSystem reads a compiled constraint system from disk.
func LoadConstraintSystem(path string) (constraint.ConstraintSystem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ccs := groth16.NewCS(ecc.BN254)
	if _, err := ccs.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("failed to read constraint system %s: %w", path, err)
	}
	return ccs, nil
}

// LoadVerifyingKey reads a Groth16 verifying key from disk.
func LoadVerifyingKey(path string) (groth16.VerifyingKey, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	vk := groth16.NewVerifyingKey(ecc.BN254)
	if _, err := vk.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("failed to read verifying key %s: %w", path, err)
	}
	return vk, nil
}

func writeTo(path string, src io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := src.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
