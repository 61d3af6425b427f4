package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/services"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <file.xlsx>",
		Short: "Detect repeated naming errors across the whole dataset",
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

			correction := services.NewCorrectionService(a.resolver)
			summary := correction.Analyze(records)

			fmt.Printf("%d resolution error(s) across %d row(s); %d pattern(s), %d auto-fixable\n",
				summary.TotalErrors, summary.AffectedRows, len(summary.Patterns), summary.AutoFixable)
			for _, p := range summary.Patterns {
				line := fmt.Sprintf("%3dx %-15s %q (rows %v)", p.Count, p.Dimension, p.Name, p.Rows)
				if p.Suggestion != nil {
					line += fmt.Sprintf("  suggestion: %q (%.0f%%)", p.Suggestion.Name, p.Confidence*100)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}
