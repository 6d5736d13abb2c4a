package main

import (
	"os"

	"github.com/spf13/cobra"

	"mainta/internal/interfaces/cli/migrate"
	"mainta/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mainta",
		Short: "Mainta - maintenance issue tracking for the shop floor",
		Long:  `Mainta tracks machine breakdowns from report to resolution, with role-based access for production and maintenance staff.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
