package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aeroatlas/spotmerge/pkg/geofence"
)

func newFilterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "filter",
		Short: "Drop spots that fall outside the configured region",
		Long: `Filter loads the canonical spot set, removes every spot whose
coordinates fall outside the configured region or whose text carries an
excluded-region marker, renumbers the survivors, and writes the set
back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient()
			if err != nil {
				return err
			}

			if !viper.GetBool("dry-run") {
				release, err := acquireLock()
				if err != nil {
					return err
				}
				defer release()
			}

			result, err := client.Filter(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Summary())

			if len(result.Removed) == 0 {
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Name", "Lat", "Lng", "Reason"},
				buildRemovalRows(result.Removed),
				[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}
}

func buildRemovalRows(removals []geofence.Removal) [][]string {
	rows := make([][]string, 0, len(removals))
	for _, r := range removals {
		rows = append(rows, []string{
			r.Spot.Name,
			fmt.Sprintf("%.6f", r.Spot.Lat),
			fmt.Sprintf("%.6f", r.Spot.Lng),
			r.Reason,
		})
	}
	return rows
}
