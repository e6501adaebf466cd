// klifs-ids exports the KLIFS kinase-ligand structure identifier table to a
// dated, compressed CSV archive and can serve the latest snapshot over HTTP.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/openkinase/klifs-ids/config"
	"github.com/openkinase/klifs-ids/logging"
	"github.com/spf13/cobra"
)

var cfg *config.Config

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "klifs-ids",
		Short:         "KLIFS kinase-ligand structure identifier export",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env file is fine, the environment may be set directly
			_ = godotenv.Load()

			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded

			logging.InitLogger("logs", cfg.LogRetentionWeeks)
			return nil
		},
	}

	root.AddCommand(newExportCommand())
	root.AddCommand(newServeCommand())

	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
