package main

import (
	"github.com/spf13/cobra"

	"prm/internal/config"
	"prm/internal/thumbnails"
)

func newPlexCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plex",
		Short: "Inspect the Plex Media Server data directory",
	}

	cmd.AddCommand(newPreviewThumbnailsCommand(ctx))

	return cmd
}

func newPreviewThumbnailsCommand(ctx *commandContext) *cobra.Command {
	opts := thumbnails.ReportOptions{UpdateRate: thumbnails.DefaultUpdateRate}
	var plexPath string

	cmd := &cobra.Command{
		Use:   "preview-thumbnails",
		Short: "Report media bundles that have no preview thumbnail index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := ctx.freshStore()
			if err := opts.Validate(); err != nil {
				return err
			}
			if err := applyOverride(cmd, store, "plex-media-server-path", config.PlexMediaServerPath, plexPath); err != nil {
				return err
			}
			pms, err := store.Get(config.PlexMediaServerPath)
			if err != nil {
				return err
			}

			logger := ctx.componentLogger("thumbnails")
			out := cmd.OutOrStdout()
			reporter := &thumbnails.Reporter{Out: out, Options: opts, Overwrite: isTerminal(out)}
			scanner := &thumbnails.Scanner{Root: thumbnails.Root(pms)}
			reporter.Attach(scanner)

			logger.Info("scanning bundles", "root", scanner.Root, "update_rate", opts.UpdateRate)
			counts, err := scanner.Scan(cmd.Context())
			if err != nil {
				return err
			}
			logger.Info("scan finished", "total", counts.Total, "missing", counts.Missing)
			return reporter.Summary(counts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.Summary, "summary", "s", false, "Print a summary after scanning")
	flags.BoolVarP(&opts.Print, "print", "p", false, "Print each bundle missing an index")
	flags.BoolVarP(&opts.JSON, "json", "j", false, "Print the summary as JSON")
	flags.BoolVar(&opts.Progress, "progress", false, "Print running totals while scanning")
	flags.IntVarP(&opts.UpdateRate, "update-rate", "u", thumbnails.DefaultUpdateRate, "Bundles between progress updates")
	flags.StringVarP(&plexPath, "plex-media-server-path", "P", "", "Plex Media Server data directory (overrides plex_media_server_path)")
	return cmd
}
