package main

import (
	"github.com/spf13/viper"

	"github.com/aeroatlas/spotmerge"
)

// buildClient assembles a pipeline client from the bound flags and
// environment. Only values the user actually set are passed on, so
// path resolution and defaults stay in the library.
func buildClient() (spotmerge.Client, error) {
	opts := []spotmerge.Option{
		spotmerge.WithDataDir(viper.GetString("data-dir")),
		spotmerge.WithSpotsDir(viper.GetString("spots-dir")),
		spotmerge.WithThreshold(viper.GetFloat64("threshold-km")),
		spotmerge.WithDelay(viper.GetDuration("delay")),
		spotmerge.WithDryRun(viper.GetBool("dry-run")),
	}

	if path := viper.GetString("enriched"); path != "" {
		opts = append(opts, spotmerge.WithEnrichedFile(path))
	}
	if path := viper.GetString("output"); path != "" {
		opts = append(opts, spotmerge.WithOutputFile(path))
	}
	if paths := viper.GetStringSlice("labels"); len(paths) > 0 {
		opts = append(opts, spotmerge.WithLabelsFiles(paths...))
	}
	if dir := viper.GetString("source-images"); dir != "" {
		opts = append(opts, spotmerge.WithSourceImagesDir(dir))
	}

	if file := viper.GetString("region-file"); file != "" {
		opts = append(opts, spotmerge.WithRegionFile(file))
	} else if name := viper.GetString("region"); name != "" {
		opts = append(opts, spotmerge.WithRegionName(name))
	}

	if viper.GetBool("no-cache") {
		opts = append(opts, spotmerge.WithoutLookupCache())
	} else if path := viper.GetString("cache"); path != "" {
		opts = append(opts, spotmerge.WithCacheFile(path))
	}

	return spotmerge.New(opts...)
}
