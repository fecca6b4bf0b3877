// Package main provides the entry point for the addrbook CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/addrbook/cmd/addrbook/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
