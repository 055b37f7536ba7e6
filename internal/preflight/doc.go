// Package preflight provides the filesystem readiness checks behind
// `prm doctor`.
//
// Configured directories are checked for read/write access and the rclone and
// merge mount paths are checked to actually be mount points, so a stale or
// unmounted remote is caught before an upload moves files into an empty
// directory. Keys that are not configured are reported as skipped.
package preflight
