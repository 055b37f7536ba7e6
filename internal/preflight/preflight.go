package preflight

import (
	"fmt"

	"prm/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name    string
	Passed  bool
	Skipped bool
	Detail  string
}

// Lookuper is the optional-lookup side of config.Store.
type Lookuper interface {
	Lookup(key config.Key) (string, bool, error)
}

var directoryChecks = []struct {
	name string
	key  config.Key
}{
	{"Local files", config.LocalFilesPath},
	{"Download complete", config.DownloadCompletePath},
	{"Plex Media Server", config.PlexMediaServerPath},
}

var mountChecks = []struct {
	name string
	key  config.Key
}{
	{"rclone mount", config.MountRclonePath},
	{"Merge mount", config.MountMergePath},
}

// RunAll checks every configured key. Unset keys are reported as skipped; a
// config error fails the corresponding check.
func RunAll(cfg Lookuper) []Result {
	if cfg == nil {
		return nil
	}

	results := make([]Result, 0, 1+len(directoryChecks)+len(mountChecks))

	remote, ok, err := cfg.Lookup(config.RcloneRemote)
	switch {
	case err != nil:
		results = append(results, Result{Name: "rclone remote", Detail: err.Error()})
	case !ok:
		results = append(results, Result{Name: "rclone remote", Skipped: true, Detail: "not configured"})
	default:
		results = append(results, Result{Name: "rclone remote", Passed: true, Detail: fmt.Sprintf("%s:", remote)})
	}

	for _, check := range directoryChecks {
		results = append(results, runPathCheck(cfg, check.name, check.key, CheckDirectoryAccess))
	}
	for _, check := range mountChecks {
		results = append(results, runPathCheck(cfg, check.name, check.key, CheckMountPoint))
	}
	return results
}

func runPathCheck(cfg Lookuper, name string, key config.Key, check func(name, path string) Result) Result {
	path, ok, err := cfg.Lookup(key)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	if !ok {
		return Result{Name: name, Skipped: true, Detail: fmt.Sprintf("%s not configured", key)}
	}
	return check(name, path)
}

// Passed reports whether no check failed. Skipped checks do not count as
// failures.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Skipped {
			return false
		}
	}
	return true
}
