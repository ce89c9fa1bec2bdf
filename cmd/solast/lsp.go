package main

import (
	"github.com/spf13/cobra"

	"github.com/solast-dev/solast/pkg/solast/lsp"
)

func lspCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start language server for compiler-JSON AST dumps (LSP)",
		Long:  `Start a language server (LSP) offering hover, completion, and live sanity diagnostics over solc --standard-json AST output (stdio mode).`,
		RunE: func(_ *cobra.Command, _ []string) error {
			lsp.NewServer().Run()

			return nil
		},
	}

	return cmd
}
