package maintenance

import (
	"fmt"

	"prm/internal/config"
	"prm/internal/shellcmd"
)

// CleanOptions mirrors the `prm clean` flags.
type CleanOptions struct {
	AfterManualImport    bool
	ManualImportPartials bool
}

// Any reports whether any clean target was requested.
func (o CleanOptions) Any() bool {
	return o.AfterManualImport || o.ManualImportPartials
}

// Compose resolves the required paths and returns the clean script. The
// second return is false when no target was requested.
func (o CleanOptions) Compose(cfg Resolver) (string, bool, error) {
	if !o.Any() {
		return "", false, nil
	}

	var downloadComplete, localFiles string
	var err error
	if o.AfterManualImport {
		if downloadComplete, err = cfg.Get(config.DownloadCompletePath); err != nil {
			return "", false, err
		}
	}
	if o.ManualImportPartials {
		if localFiles, err = cfg.Get(config.LocalFilesPath); err != nil {
			return "", false, err
		}
	}

	script := shellcmd.NewScript()
	if o.AfterManualImport {
		script.Add(afterManualImportBlock(downloadComplete))
	}
	if o.ManualImportPartials {
		script.Add(manualImportPartialsBlock(localFiles))
	}
	return script.String(), true, nil
}

func afterManualImportBlock(downloadComplete string) string {
	return fmt.Sprintf(`
		path=%s
		echo "Deleting extra files"
		find "${path}" -type f \( -iname "*sample*" -o -iname "*.nfo" -o -iname "*.nzb" -o -iname "*.jpg" \
		    -o -iname "*.srr" -o -iname "*.url" -o -iname "*.txt" \) -print -delete
		echo "Deleting empty Films folders"
		find "${path}/Films" -type d -empty -print -delete
		echo "Deleting empty TV folders"
		find "${path}/TV" -type d -empty -print -delete
		echo "Deleting empty Music folders"
		find "${path}/Music" -type d -empty -print -delete
	`, shellcmd.Quote(downloadComplete))
}

func manualImportPartialsBlock(localFiles string) string {
	root := shellcmd.Quote(localFiles)
	exclude := shellcmd.Quote(localFiles + "/download/*")
	return fmt.Sprintf(`
		find %[1]s -type f -iname "*.partial~" -not \
		    -path %[2]s -print -delete
		find %[1]s -mindepth 1 -type d -not \
		    -path %[2]s -empty -print -delete
	`, root, exclude)
}
