package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aeroatlas/spotmerge/pkg/evidence"
)

const mergeSampleRows = 15

func newMergeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Match image folders to enrichment records and write the spot set",
		Long: `Merge scans the published image tree for spot folders, loads the
enrichment records, resolves which record backs which folder by the
image evidence the records declare, and writes the assembled spot set.`,
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

			result, err := client.Merge(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Summary())

			rows := buildResolutionRows(result.Resolution.Folders, shouldColorize(out))
			if len(rows) == 0 {
				return nil
			}
			rows, more := capRows(rows, mergeSampleRows)
			fmt.Fprintln(out, renderTable(
				[]string{"Folder", "Record", "Method", "Votes"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight},
			))
			if more > 0 {
				fmt.Fprintf(out, "... and %d more folders\n", more)
			}
			return nil
		},
	}
}

func buildResolutionRows(folders []evidence.FolderResolution, colorize bool) [][]string {
	rows := make([][]string, 0, len(folders))
	for _, f := range folders {
		record := "-"
		if f.Record >= 0 {
			record = strconv.Itoa(f.Record)
		}
		votes := ""
		if f.Method == evidence.MethodVote {
			votes = strconv.Itoa(f.Votes)
		}
		rows = append(rows, []string{
			f.Folder,
			record,
			paint(string(f.Method), methodColor(f.Method), colorize),
			votes,
		})
	}
	return rows
}

func methodColor(method evidence.Method) string {
	switch method {
	case evidence.MethodVote:
		return ansiGreen
	case evidence.MethodPosition:
		return ansiYellow
	case evidence.MethodNone:
		return ansiRed
	default:
		return ""
	}
}
