package maintenance

import (
	"fmt"
	"strings"

	"prm/internal/config"
	"prm/internal/shellcmd"
	"prm/internal/validation"
)

// UploadOptions mirrors the `prm upload` target flags.
type UploadOptions struct {
	All              bool
	LocalServerSetup bool
	Media            bool
	PlexData         bool
	NoTar            bool
}

// Targets is the validated set of upload families, with All expanded.
type Targets struct {
	LocalServerSetup bool
	PlexData         bool
	Media            bool
	Tar              bool
}

// Validate checks flag combinations and expands All.
func (o UploadOptions) Validate() (Targets, error) {
	individual := o.LocalServerSetup || o.Media || o.PlexData
	if o.All && individual {
		return Targets{}, validation.Failf("If --all is specified, no other related options should be")
	}
	t := Targets{
		LocalServerSetup: o.LocalServerSetup,
		PlexData:         o.PlexData,
		Media:            o.Media,
		Tar:              !o.NoTar,
	}
	if o.All {
		t.LocalServerSetup, t.PlexData, t.Media = true, true, true
	} else if !individual {
		return Targets{}, validation.Failf("No target options given")
	}
	if o.NoTar && !t.LocalServerSetup && !t.PlexData {
		return Targets{}, validation.Failf("--no-tar given for uploads that do not create a tar")
	}
	return t, nil
}

// Compose validates the options, resolves every needed value, and returns the
// upload script. Families are emitted as server setup, plex data, media.
func (o UploadOptions) Compose(cfg Resolver) (string, error) {
	t, err := o.Validate()
	if err != nil {
		return "", err
	}

	remote, err := cfg.Get(config.RcloneRemote)
	if err != nil {
		return "", err
	}
	remote = strings.TrimSuffix(remote, ":")
	var plexPath, localFiles string
	if t.PlexData && t.Tar {
		if plexPath, err = cfg.Get(config.PlexMediaServerPath); err != nil {
			return "", err
		}
	}
	if t.Media {
		if localFiles, err = cfg.Get(config.LocalFilesPath); err != nil {
			return "", err
		}
	}

	script := shellcmd.NewScript()
	if t.LocalServerSetup {
		script.Add(serverSyncBlock(remote))
		if t.Tar {
			script.Add(dotConfigTarBlock())
		}
		script.Add(stagingMoveBlock("~/tmp/plex_server_backups/dot_config", remote+":/Backups/Server/Config"))
	}
	if t.PlexData {
		if t.Tar {
			script.Add(plexDataTarBlock(plexPath))
		}
		script.Add(stagingMoveBlock("~/tmp/plex_server_backups/plex_data", remote+":/Backups/Plex"))
	}
	if t.Media {
		script.Add(mediaMoveBlock(localFiles, remote))
	}
	return script.String(), nil
}

func serverSyncBlock(remote string) string {
	return fmt.Sprintf(`
		%[1]s sync -v --progress \
		~/scripts \
		%[2]s

		%[1]s sync -v --progress \
		~/.startup \
		%[3]s

		%[1]s sync -v --progress \
		~/.shutdown \
		%[4]s
	`, RcloneBinary,
		shellcmd.Quote(remote+":/Backups/Server/Scripts"),
		shellcmd.Quote(remote+":/Backups/Server/Startup"),
		shellcmd.Quote(remote+":/Backups/Server/Shutdown"))
}

func dotConfigTarBlock() string {
	return `
		file_path=~/"tmp/plex_server_backups/dot_config/$(date +"%Y/%m")"
		mkdir -p "${file_path}"
		` + TarBinary + ` -czhf "${file_path}/$(date +"%Y-%m-%d").tar.gz" \
		-C ~ \
		.config
	`
}

func plexDataTarBlock(plexPath string) string {
	return `
		file_path=~/"tmp/plex_server_backups/plex_data/$(date +"%Y/%m")"
		mkdir -p "${file_path}"
		` + TarBinary + ` -czhf "${file_path}/$(date +"%Y-%m-%d").tar.gz" \
		-C ~ \
		` + shellcmd.Quote(plexPath+"/Media/") + ` \
		` + shellcmd.Quote(plexPath+"/Metadata/") + ` \
		` + shellcmd.Quote(plexPath+"/Plug-ins/") + ` \
		` + shellcmd.Quote(plexPath+"/Plug-in Support/") + `
	`
}

// stagingMoveBlock moves a local staging tree (shell-expanded, so it may start
// with ~) to the remote.
func stagingMoveBlock(source, dest string) string {
	return fmt.Sprintf(`
		%s move \
		%s %s \
		-v \
		--transfers=1 \
		--progress \
		--delete-empty-src-dirs \
		--drive-stop-on-upload-limit
	`, RcloneBinary, source, shellcmd.Quote(dest))
}

func mediaMoveBlock(localFiles, remote string) string {
	return fmt.Sprintf(`
		echo "Moving processed content"
		%s move \
		%s %s \
		-v \
		--progress \
		--delete-empty-src-dirs \
		--exclude "/download/**" \
		--exclude "*.partial~" \
		--transfers=1 \
		--drive-stop-on-upload-limit
	`, RcloneBinary, shellcmd.Quote(localFiles), shellcmd.Quote(remote+":"))
}
