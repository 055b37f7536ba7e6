package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"prm/internal/maintenance"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var opts maintenance.CleanOptions
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete leftover files from downloads and local media",
		Long: `Delete junk left behind by imports.

--after-manual-import removes sample/nfo/nzb/jpg/srr/url/txt files and empty
Films, TV and Music folders under download_complete_path.

--manual-import-partials removes *.partial~ files and empty directories under
local_files_path, leaving the download/ subtree alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := ctx.freshStore()
			script, ok, err := opts.Compose(store)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to clean")
				return nil
			}
			return ctx.execute(cmd, "clean", script, dryRun)
		},
	}

	cmd.Flags().BoolVar(&opts.AfterManualImport, "after-manual-import", false, "Clean the download directory after a manual import")
	cmd.Flags().BoolVar(&opts.ManualImportPartials, "manual-import-partials", false, "Remove partial files left in local files")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the script instead of running it")
	return cmd
}
