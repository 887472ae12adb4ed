package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/brgysanantonio/portal/internal/storage"
)

var (
	seedDB    string
	seedReset bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the budget table with the default allocation rows",
	Long: `Seed inserts the six default budget allocation rows when the table is
empty. With --reset, existing rows are discarded first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(seedDB, seedReset, cmd.OutOrStdout())
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedDB, "db", "portal.db", "Path to database file")
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "Replace existing rows with the seed set")
}

func runSeed(dbPath string, reset bool, stdout io.Writer) error {
	if path := os.Getenv("PORTAL_DB"); path != "" && dbPath == "portal.db" {
		dbPath = path
	}

	// Opening the database migrates and seeds an empty budget table.
	db, err := storage.NewDB(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if reset {
		if err := db.ResetAllocations(); err != nil {
			return fmt.Errorf("failed to reset allocations: %w", err)
		}
	}

	items, err := db.ListAllocations()
	if err != nil {
		return fmt.Errorf("failed to list allocations: %w", err)
	}

	fmt.Fprintf(stdout, "Budget table ready with %d allocation rows\n", len(items))
	return nil
}
