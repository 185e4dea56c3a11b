package main

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aeroatlas/spotmerge/pkg/constants"
	"github.com/aeroatlas/spotmerge/pkg/geofence"
	"github.com/aeroatlas/spotmerge/pkg/logging"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spotmerge",
		Short: "Reconcile drone-spot images with their enrichment records",
		Long: `Spotmerge maintains the canonical spot set an app serves from the
image folders a drone survey produced and the enrichment records
scraped for them.

The pipeline runs as separate commands, usually in this order:

  merge    match image folders to records and write the spot set
  correct  validate stored coordinates against a live map lookup
  filter   drop spots that fall outside the configured region
  images   rebuild the published image tree from suitable originals

Configuration comes from flags, environment variables, and .env files,
in that order of precedence. Every flag maps to an environment
variable by uppercasing and replacing dashes, so --data-dir becomes
DATA_DIR.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configureLogging()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("data-dir", constants.DataDirName, "Directory holding the enrichment file, labels, downloads, and outputs")
	flags.String("spots-dir", constants.SpotsDirName, "Published image tree the scanner reads and the sync writes")
	flags.String("enriched", "", "Enrichment record file (default <data-dir>/"+constants.EnrichedFileName+")")
	flags.String("output", "", "Canonical spot set file (default <data-dir>/"+constants.OutputFileName+")")
	flags.StringSlice("labels", nil, "Labeled-image CSV files (default <data-dir>/"+constants.LabelsFileName+")")
	flags.String("source-images", "", "Downloaded-image tree the sync copies from (default <data-dir>/"+constants.SourceImagesDirName+")")
	flags.String("region", geofence.DefaultRegionName, "Embedded fence region name")
	flags.String("region-file", "", "Fence region YAML file, overrides --region")
	flags.Float64("threshold-km", constants.DefaultThresholdKm, "Distance in km beyond which a stored coordinate is replaced")
	flags.Duration("delay", constants.DefaultRequestDelay, "Pause between coordinate lookups")
	flags.String("cache", "", "Coordinate lookup cache file (default <data-dir>/"+constants.CacheFileName+")")
	flags.Bool("no-cache", false, "Disable the coordinate lookup cache")
	flags.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	flags.Bool("no-color", false, "Disable colored output")
	flags.Bool("dry-run", false, "Report what would change without writing any file")

	// Load .env files first (before Viper env binding).
	// .env.local overrides .env.
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	_ = viper.BindPFlags(flags)

	rootCmd.AddCommand(newMergeCommand())
	rootCmd.AddCommand(newCorrectCommand())
	rootCmd.AddCommand(newFilterCommand())
	rootCmd.AddCommand(newImagesCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// configureLogging points the default logger at the bound flag values.
// The pipeline picks it up through the context fallback.
func configureLogging() {
	cfg := logging.DefaultConfig()
	cfg.Level = viper.GetString("log-level")
	if viper.GetBool("no-color") {
		cfg.NoColor = true
	}
	logging.Configure(cfg)
}
