// Package shellcmd builds and runs the multi-line shell scripts prm hands to
// /bin/sh.
//
// Scripts are assembled from indented blocks that Block normalizes (common
// indentation removed, surrounding blank lines trimmed, one trailing newline)
// so Go source can keep templates readable. Runner is the seam between
// composition and execution; tests substitute a recording fake.
package shellcmd
