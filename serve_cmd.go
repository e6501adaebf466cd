package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openkinase/klifs-ids/data"
	"github.com/openkinase/klifs-ids/export"
	"github.com/openkinase/klifs-ids/klifs"
	"github.com/openkinase/klifs-ids/logging"
	"github.com/openkinase/klifs-ids/scheduler"
	"github.com/openkinase/klifs-ids/server"
	"github.com/openkinase/klifs-ids/validation"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the latest snapshot over HTTP and refresh it daily",
		RunE: func(cmd *cobra.Command, args []string) error {
			dataContainer := data.NewDataContainer()

			client := klifs.NewClient(cfg.KlifsBaseURL, cfg.FetchTimeout)
			exporter := export.NewExporter(client, validation.NewValidator(), cfg.ExportDir)

			sched := scheduler.NewScheduler(dataContainer, exporter)
			if err := sched.Start(); err != nil {
				return fmt.Errorf("scheduler start failed: %w", err)
			}
			defer sched.Stop()

			srv := server.NewServer(cfg, dataContainer)

			// Channel to listen for interrupt signals
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			serverErr := make(chan error, 1)
			go func() {
				serverErr <- srv.Start()
			}()

			select {
			case err := <-serverErr:
				if err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
			case <-quit:
				logging.Info("Shutdown signal received")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			return srv.Shutdown(ctx)
		},
	}
}
