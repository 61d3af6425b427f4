package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/services"
	"github.com/Lushbits/pdbulkupload-sub002/pkg/eventbus"
)

func newUploadCmd() *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "upload <file.xlsx>",
		Short: "Validate and bulk-upload the spreadsheet, then assign pay rates",
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

			if batchSize == 0 {
				batchSize = a.conf.Upload.BatchSize
			}

			bus := eventbus.NewEventPublisher(a.log)
			bus.Subscribe(func(e *services.UploadFinishedEvent) {
				a.log.Infof("upload finished: state=%s succeeded=%d failed=%d", e.State, e.Succeeded, e.Failed)
			})

			payrates := services.NewPayrateService(a.client, a.log)
			uploader := services.NewUploadService(
				a.resolver, a.validator, payrates, a.client, a.client, bus, batchSize, a.log)

			report, err := uploader.Run(cmd.Context(), records, services.Hooks{
				OnProgress: func(p services.UploadProgress) {
					fmt.Printf("batch %d/%d: %d attempted, %d succeeded, %d failed\n",
						p.Batch, p.TotalBatches, p.Attempted, p.Succeeded, p.Failed)
				},
				OnPayrate: func(p services.PayrateProgress) {
					fmt.Printf("pay rates: %d/%d\n", p.Completed, p.Total)
				},
			})
			if err != nil {
				return err
			}

			printFindings(report.Errors)

			switch report.State {
			case services.StateCompleted:
				fmt.Printf("completed: %d employee(s) created, %d pay rate(s) set\n",
					report.Progress.Succeeded, len(report.PayrateResults))
				return nil
			default:
				if report.PartialUpload {
					return fmt.Errorf("upload halted: %d succeeded before the failure (%s)",
						report.Progress.Succeeded, report.FailureMessage)
				}
				return fmt.Errorf("nothing was uploaded: %s", report.FailureMessage)
			}
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "records per creation batch (default from configuration)")
	return cmd
}
