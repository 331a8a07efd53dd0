package main

import (
	"os"

	"github.com/spf13/cobra"

	"lldgw/internal/interfaces/cli/migrate"
	"lldgw/internal/interfaces/cli/server"
	"lldgw/internal/interfaces/cli/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lldgw",
		Short: "LLD payment gateway",
		Long:  `A merchant payment gateway for Liberland Dollar (LLD) with on-chain payment verification.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
