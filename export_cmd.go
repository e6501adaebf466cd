package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/openkinase/klifs-ids/export"
	"github.com/openkinase/klifs-ids/klifs"
	"github.com/openkinase/klifs-ids/validation"
	"github.com/spf13/cobra"
)

func newExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Run one export: fetch, project, check duplicates, write the dated archive, verify",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			client := klifs.NewClient(cfg.KlifsBaseURL, cfg.FetchTimeout)
			exporter := export.NewExporter(client, validation.NewValidator(), cfg.ExportDir)

			result, err := exporter.Run(ctx)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			fmt.Print(validation.Render(result.Report))
			fmt.Printf("archive written: %s\n", result.ArchivePath)

			return nil
		},
	}
}
