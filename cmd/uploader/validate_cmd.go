package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/aggregates/employee"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.xlsx>",
		Short: "Run the full pre-flight validation without uploading anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			records, err := a.readRecords(args[0])
			if err != nil {
				return err
			}

			findings := a.localFindings(records)
			printFindings(findings)

			if employee.HasBlocking(findings) {
				return fmt.Errorf("validation failed: %d finding(s)", len(findings))
			}
			fmt.Printf("%d record(s) passed local validation\n", len(records))
			return nil
		},
	}
}
