package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "images",
		Short: "Rebuild the published image tree from suitable originals",
		Long: `Images clears the spot folders under the published image tree and
copies back only the downloaded originals the label files mark as
suitable. There is no dry-run variant; the command always locks and
always writes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient()
			if err != nil {
				return err
			}

			release, err := acquireLock()
			if err != nil {
				return err
			}
			defer release()

			result, err := client.SyncImages(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
			return nil
		},
	}
}
