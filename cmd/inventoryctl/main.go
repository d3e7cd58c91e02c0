package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "inventoryctl",
		Short:         "Operator tasks for the QR inventory service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Database
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newTablesCmd())

	// Accounts
	root.AddCommand(newResetPasswordCmd())
	return root
}
