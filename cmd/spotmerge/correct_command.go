package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aeroatlas/spotmerge/pkg/correct"
	"github.com/aeroatlas/spotmerge/pkg/geo"
)

const correctionSampleRows = 10

func newCorrectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "correct",
		Short: "Validate stored coordinates against a live map lookup",
		Long: `Correct looks every enrichment record's coordinates up on the map
and replaces the stored pair when it sits too far from what the lookup
returned. The enrichment file is backed up before the run, and both a
corrected copy and the updated original are written only when at least
one coordinate moved.`,
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

			report, err := client.Correct(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.Summary())

			if len(report.Corrections) == 0 {
				return nil
			}
			rows, more := capRows(buildCorrectionRows(report.Corrections), correctionSampleRows)
			fmt.Fprintln(out, renderTable(
				[]string{"Record", "Name", "Old", "New", "Distance"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
			))
			if more > 0 {
				fmt.Fprintf(out, "... and %d more corrections\n", more)
			}
			return nil
		},
	}
}

func buildCorrectionRows(corrections []correct.CorrectionRecord) [][]string {
	rows := make([][]string, 0, len(corrections))
	for _, c := range corrections {
		rows = append(rows, []string{
			strconv.Itoa(c.Index),
			c.Name,
			formatPoint(c.Old),
			formatPoint(c.New),
			fmt.Sprintf("%.1f km", c.DistanceKm),
		})
	}
	return rows
}

func formatPoint(p geo.Point) string {
	return fmt.Sprintf("%.6f, %.6f", p.Lat, p.Lng)
}
