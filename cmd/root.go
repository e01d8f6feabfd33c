package main

import (
	"github.com/spf13/cobra"

	"github.com/didwallet/zk-disclosure/cmd/proof"
)

// Init the cmd
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "didproof",
		Short: "Selective-disclosure credential proof service",
		Long:  `Tools and APIs for generating and checking zero-knowledge credential disclosure proofs`,
	}

	rootCmd.AddCommand(
		proof.NewServeCmd(),
		proof.NewCompileCmd(),
		NewVersionCmd(),
	)

	return rootCmd
}
