package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uploader",
		Short: "Bulk-upload employees from a spreadsheet to the portal",
	}
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newUploadCmd())
	return cmd
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
