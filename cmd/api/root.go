package main

import (
	"github.com/spf13/cobra"
)

// newRootCommand comando raíz; sin subcomando levanta el servidor HTTP.
func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cadastro",
		Short: "Cadastro de clientes com relatórios de renda",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())

	return rootCmd
}
