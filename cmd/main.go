package main

import (
	"fmt"
	"os"
)

// didproof - CLI tool and API service for selective-disclosure credential
// proof generation and validation
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
