package main

import (
	"strings"

	"github.com/spf13/cobra"

	"prm/internal/config"
	"prm/internal/maintenance"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var opts maintenance.UploadOptions
	var remote, plexPath string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Back up server files and move local media to the rclone remote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := ctx.freshStore()
			if _, err := opts.Validate(); err != nil {
				return err
			}
			if err := applyOverride(cmd, store, "rclone-remote", config.RcloneRemote, remote); err != nil {
				return err
			}
			if err := applyOverride(cmd, store, "plex-media-server-path", config.PlexMediaServerPath, plexPath); err != nil {
				return err
			}
			script, err := opts.Compose(store)
			if err != nil {
				return err
			}
			return ctx.execute(cmd, "upload", script, dryRun)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.All, "all", false, "Upload everything (same as --local-server-setup --plex-data --media)")
	flags.BoolVar(&opts.LocalServerSetup, "local-server-setup", false, "Back up ~/scripts, ~/.startup, ~/.shutdown and ~/.config")
	flags.BoolVar(&opts.Media, "media", false, "Move processed media from local_files_path to the remote")
	flags.BoolVar(&opts.PlexData, "plex-data", false, "Back up the Plex Media Server data directory")
	flags.BoolVar(&opts.NoTar, "no-tar", false, "Skip creating tarballs; only move existing staging files")
	flags.StringVarP(&remote, "rclone-remote", "r", "", "rclone remote name (overrides rclone_remote)")
	flags.StringVarP(&plexPath, "plex-media-server-path", "P", "", "Plex Media Server data directory (overrides plex_media_server_path)")
	flags.BoolVar(&dryRun, "dry-run", false, "Print the script instead of running it")

	_ = cmd.RegisterFlagCompletionFunc("rclone-remote", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeRemotes(cmd, ctx, toComplete)
	})
	return cmd
}

func completeRemotes(cmd *cobra.Command, ctx *commandContext, prefix string) ([]string, cobra.ShellCompDirective) {
	lister, err := ctx.remoteLister()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	remotes, err := lister.ListRemotes(cmd.Context())
	if err != nil {
		ctx.componentLogger("rclone").Debug("list remotes failed", "error", err)
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := make([]string, 0, len(remotes))
	for _, remote := range remotes {
		name := strings.TrimSuffix(remote, ":")
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
