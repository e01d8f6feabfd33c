package proof

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/didwallet/zk-disclosure/common"
	gnarkprover "github.com/didwallet/zk-disclosure/prover/gnark"
)

type compileConfig struct {
	outputDir string
	circuits  []string
	force     bool
}

func NewCompileCmd() *cobra.Command {
	cfg := &compileConfig{}

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile circuits and generate setup files",
		Long:  `Compile the disclosure circuits and generate constraint systems, proving keys, and verification keys. Compiling all circuits might take some time.`,
		Example: `  # Compile all circuits
  didproof compile -o ./setup

  # Compile specific circuits
  didproof compile -o ./setup -c age-verification,selective-disclosure
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.outputDir, "output", "o", "./setup", "Output directory for compiled circuits")
	cmd.Flags().StringSliceVarP(&cfg.circuits, "circuits", "c", []string{}, "Specific circuits to compile (comma-separated, empty = all)")
	cmd.Flags().BoolVarP(&cfg.force, "force", "f", false, "Overwrite existing files")

	return cmd
}

func runCompile(cfg *compileConfig) error {
	if err := os.MkdirAll(cfg.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	circuitsToCompile := cfg.circuits
	if len(circuitsToCompile) == 0 {
		for name := range gnarkprover.Circuits {
			circuitsToCompile = append(circuitsToCompile, name)
		}
	}

	fmt.Printf("\n==== Compiling %d circuits to %s ====\n", len(circuitsToCompile), cfg.outputDir)

	for _, name := range circuitsToCompile {
		spec, ok := gnarkprover.Circuits[name]
		if !ok {
			fmt.Printf("Circuit %s not found, skipping\n", name)
			continue
		}

		ccsPath, pkPath, vkPath := common.SetupPaths(cfg.outputDir, spec.ID, spec.Version)
		if !cfg.force && anyExists(ccsPath, pkPath, vkPath) {
			fmt.Printf("%s already exists, skipping (use --force to overwrite)\n", name)
			continue
		}

		start := time.Now()
		fmt.Printf("Compiling %s...\n", name)

		if err := common.SetupAndSave(spec.Template(), cfg.outputDir, spec.ID, spec.Version); err != nil {
			fmt.Printf("[X] Failed to compile %s: %v\n", name, err)
			continue
		}

		elapsed := time.Since(start)
		fmt.Printf("[OK] Compiled %s in %s\n", name, elapsed.Round(time.Second))
	}

	fmt.Println("\n==== Compilation complete ====")
	return nil
}

func anyExists(paths ...string) bool {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}
