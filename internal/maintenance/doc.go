// Package maintenance composes the shell scripts behind `prm clean` and
// `prm upload`.
//
// Option sets are validated in full and every config value is resolved before
// any script text is produced, so a rejected flag combination or a missing
// setting never yields a partial script. Blocks are appended in a fixed order
// and normalized by shellcmd.Block.
package maintenance

import (
	"prm/internal/config"
)

// Binaries invoked by the composed scripts.
const (
	RcloneBinary = "/usr/local/bin/rclone"
	TarBinary    = "/bin/tar"
)

// Resolver is the read side of config.Store used during composition.
type Resolver interface {
	Get(key config.Key) (string, error)
}
