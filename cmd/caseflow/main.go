package main

import (
	"os"

	"github.com/spf13/cobra"

	"caseflow/internal/interfaces/cli/migrate"
	"caseflow/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "caseflow",
		Short: "Caseflow - work item assignment and SLA escalation engine",
		Long:  `Caseflow routes work items to staff against WIP limits, queues overflow, tracks SLA deadlines, and escalates breaches.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
