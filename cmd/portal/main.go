package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "portal",
	Short:   "Barangay San Antonio 1 web portal",
	Version: version,
}

func main() {
	rootCmd.AddCommand(serveCmd, addAdminCmd, seedCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
