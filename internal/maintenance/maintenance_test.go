package maintenance

import (
	"errors"
	"strings"
	"testing"

	"prm/internal/config"
	"prm/internal/validation"
)

type mapResolver map[config.Key]string

func (m mapResolver) Get(key config.Key) (string, error) {
	if v, ok := m[key]; ok && v != "" {
		return v, nil
	}
	return "", &config.MissingKeyError{Key: key}
}

func fullConfig() mapResolver {
	return mapResolver{
		config.RcloneRemote:         "gdrive",
		config.LocalFilesPath:       "/srv/local",
		config.DownloadCompletePath: "/srv/downloads/complete",
		config.PlexMediaServerPath:  "/srv/Plex Media Server",
	}
}

func requireOrder(t *testing.T, text string, parts ...string) {
	t.Helper()
	offset := 0
	for _, part := range parts {
		idx := strings.Index(text[offset:], part)
		if idx < 0 {
			t.Fatalf("expected %q after offset %d in:\n%s", part, offset, text)
		}
		offset += idx + len(part)
	}
}

func requireSingleTrailingNewline(t *testing.T, text string) {
	t.Helper()
	if !strings.HasSuffix(text, "\n") || strings.HasSuffix(text, "\n\n") {
		t.Fatalf("expected exactly one trailing newline, got %q", text[max(0, len(text)-20):])
	}
}

func TestCleanAfterManualImport(t *testing.T) {
	script, ok, err := CleanOptions{AfterManualImport: true}.Compose(fullConfig())
	if err != nil || !ok {
		t.Fatalf("Compose: ok=%v err=%v", ok, err)
	}
	requireOrder(t, script,
		"set -x\n",
		"path=/srv/downloads/complete\n",
		`-iname "*sample*" -o -iname "*.nfo" -o -iname "*.nzb" -o -iname "*.jpg"`,
		`-o -iname "*.srr" -o -iname "*.url" -o -iname "*.txt" \) -print -delete`,
		`find "${path}/Films" -type d -empty -print -delete`,
		`find "${path}/TV" -type d -empty -print -delete`,
		`find "${path}/Music" -type d -empty -print -delete`,
	)
	requireSingleTrailingNewline(t, script)
	if strings.Contains(script, "partial~") {
		t.Fatal("partials block emitted without --manual-import-partials")
	}
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(line, "\t") {
			t.Fatalf("indentation leaked into script line %q", line)
		}
	}
}

func TestCleanManualImportPartials(t *testing.T) {
	script, ok, err := CleanOptions{ManualImportPartials: true}.Compose(fullConfig())
	if err != nil || !ok {
		t.Fatalf("Compose: ok=%v err=%v", ok, err)
	}
	requireOrder(t, script,
		`find /srv/local -type f -iname "*.partial~" -not \`,
		`-path '/srv/local/download/*' -print -delete`,
		`find /srv/local -mindepth 1 -type d -not \`,
		`-path '/srv/local/download/*' -empty -print -delete`,
	)
	requireSingleTrailingNewline(t, script)
}

func TestCleanBothTargetsInOrder(t *testing.T) {
	script, _, err := CleanOptions{AfterManualImport: true, ManualImportPartials: true}.Compose(fullConfig())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	requireOrder(t, script, "Deleting extra files", "Deleting empty Music folders", "*.partial~")
}

func TestCleanWithoutTargets(t *testing.T) {
	script, ok, err := CleanOptions{}.Compose(mapResolver{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if ok || script != "" {
		t.Fatalf("expected nothing to compose, got ok=%v script=%q", ok, script)
	}
}

func TestCleanMissingConfigProducesNoScript(t *testing.T) {
	cfg := fullConfig()
	delete(cfg, config.LocalFilesPath)
	script, _, err := CleanOptions{AfterManualImport: true, ManualImportPartials: true}.Compose(cfg)
	if !errors.Is(err, config.ErrMissingRequired) {
		t.Fatalf("expected ErrMissingRequired, got %v", err)
	}
	if script != "" {
		t.Fatalf("expected no partial script, got %q", script)
	}
}

func TestUploadValidation(t *testing.T) {
	cases := []struct {
		name string
		opts UploadOptions
	}{
		{"none", UploadOptions{}},
		{"all with media", UploadOptions{All: true, Media: true}},
		{"all with server setup", UploadOptions{All: true, LocalServerSetup: true}},
		{"all with plex data", UploadOptions{All: true, PlexData: true}},
		{"no tar with media only", UploadOptions{Media: true, NoTar: true}},
		{"no tar alone", UploadOptions{NoTar: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			script, err := tc.opts.Compose(fullConfig())
			if !errors.Is(err, validation.ErrFlagValidation) {
				t.Fatalf("expected ErrFlagValidation, got %v", err)
			}
			if script != "" {
				t.Fatalf("expected no script, got %q", script)
			}
		})
	}
}

func TestUploadValidationPrecedesConfigResolution(t *testing.T) {
	_, err := UploadOptions{}.Compose(mapResolver{})
	if !errors.Is(err, validation.ErrFlagValidation) {
		t.Fatalf("expected flag validation before config lookups, got %v", err)
	}
}

func TestUploadAllOrderAndTar(t *testing.T) {
	script, err := UploadOptions{All: true}.Compose(fullConfig())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	requireOrder(t, script,
		"set -x\n",
		"~/scripts \\\ngdrive:/Backups/Server/Scripts\n",
		"~/.startup \\\ngdrive:/Backups/Server/Startup\n",
		"~/.shutdown \\\ngdrive:/Backups/Server/Shutdown\n",
		"dot_config/$(date +\"%Y/%m\")",
		TarBinary+" -czhf",
		".config\n",
		"~/tmp/plex_server_backups/dot_config gdrive:/Backups/Server/Config \\",
		"plex_data/$(date +\"%Y/%m\")",
		"'/srv/Plex Media Server/Media/' \\",
		"'/srv/Plex Media Server/Metadata/' \\",
		"'/srv/Plex Media Server/Plug-ins/' \\",
		"'/srv/Plex Media Server/Plug-in Support/'\n",
		"~/tmp/plex_server_backups/plex_data gdrive:/Backups/Plex \\",
		`echo "Moving processed content"`,
		"/srv/local gdrive: \\",
		`--exclude "/download/**" \`,
		`--exclude "*.partial~" \`,
	)
	requireSingleTrailingNewline(t, script)
}

func TestUploadNoTarSkipsTarballs(t *testing.T) {
	cfg := fullConfig()
	delete(cfg, config.PlexMediaServerPath)
	script, err := UploadOptions{All: true, NoTar: true}.Compose(cfg)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if strings.Contains(script, TarBinary) {
		t.Fatalf("expected no tar invocation with --no-tar:\n%s", script)
	}
	requireOrder(t, script, "/Backups/Server/Config", "/Backups/Plex", "Moving processed content")
}

func TestUploadMediaOnly(t *testing.T) {
	cfg := mapResolver{
		config.RcloneRemote:   "gdrive:",
		config.LocalFilesPath: "/srv/local",
	}
	script, err := UploadOptions{Media: true}.Compose(cfg)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if strings.Contains(script, "/Backups/") {
		t.Fatalf("media-only upload touched backup targets:\n%s", script)
	}
	requireOrder(t, script, "/srv/local gdrive: \\")
}

func TestUploadMissingRemote(t *testing.T) {
	cfg := fullConfig()
	delete(cfg, config.RcloneRemote)
	script, err := UploadOptions{PlexData: true}.Compose(cfg)
	var missing *config.MissingKeyError
	if !errors.As(err, &missing) || missing.Key != config.RcloneRemote {
		t.Fatalf("expected missing rclone_remote, got %v", err)
	}
	if script != "" {
		t.Fatalf("expected no script, got %q", script)
	}
}
