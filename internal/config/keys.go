package config

import (
	"fmt"
	"strings"
)

// Key identifies a recognized configuration setting.
type Key int

const (
	RcloneRemote Key = iota
	LocalFilesPath
	MountRclonePath
	MountMergePath
	DownloadCompletePath
	PlexMediaServerPath
)

var keyNames = [...]string{
	RcloneRemote:         "rclone_remote",
	LocalFilesPath:       "local_files_path",
	MountRclonePath:      "mount_rclone_path",
	MountMergePath:       "mount_merge_path",
	DownloadCompletePath: "download_complete_path",
	PlexMediaServerPath:  "plex_media_server_path",
}

// Keys returns every recognized key in declaration order.
func Keys() []Key {
	keys := make([]Key, len(keyNames))
	for i := range keyNames {
		keys[i] = Key(i)
	}
	return keys
}

// String returns the lower-case name used in config files.
func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return fmt.Sprintf("key(%d)", int(k))
	}
	return keyNames[k]
}

// IsPath reports whether the key holds a filesystem path.
func (k Key) IsPath() bool {
	switch k {
	case LocalFilesPath, MountRclonePath, MountMergePath, DownloadCompletePath, PlexMediaServerPath:
		return true
	default:
		return false
	}
}

// ParseKey maps a config file key name to its Key.
func ParseKey(name string) (Key, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range keyNames {
		if candidate == name {
			return Key(i), true
		}
	}
	return 0, false
}
