// Command terra-incognita generates statistically-realistic planetary
// heightmaps from eight global parameters plus a seed.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/spectrum-art/terra-incognita/internal/logging"
)

func main() {
	logging.InitLogger()

	root := &cobra.Command{
		Use:   "terra-incognita",
		Short: "Procedural planetary heightmap generator",
		Long: "terra-incognita generates dense elevation fields on an equirectangular grid\n" +
			"from eight global sliders and a seed, scored against empirical\n" +
			"geomorphometric reference distributions.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := cmd.Flags().GetString("log-level")
			logging.SetLevel(level)
		},
	}
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("config", "", "TOML configuration file")

	root.AddCommand(generateCmd())
	root.AddCommand(paramsCmd())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
