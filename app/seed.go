package app

import (
	"github.com/spf13/cobra"

	"github.com/Lelasalasad/new-drisavo/internal/config"
	"github.com/Lelasalasad/new-drisavo/internal/daemon"
)

func init() { //nolint: gochecknoinits
	seedCmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration directory")

	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the demo services and site content",
	PreRun: func(_ *cobra.Command, _ []string) {
		if cfg, err = config.ReadConfig(configPath); err != nil {
			panic(err)
		}
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return daemon.SeedDemoData(&cfg)
	},
}
