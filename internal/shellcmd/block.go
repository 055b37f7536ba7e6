package shellcmd

import (
	"strings"
)

// Block dedents text, trims surrounding whitespace, and appends exactly one
// newline. Whitespace-only lines become empty and do not affect the margin.
func Block(text string) string {
	lines := strings.Split(text, "\n")
	margin := ""
	first := true
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			margin = indent
			first = false
			continue
		}
		margin = commonPrefix(margin, indent)
	}
	if margin != "" {
		for i, line := range lines {
			lines[i] = strings.TrimPrefix(line, margin)
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

// Quote returns value quoted for POSIX sh. Values made only of safe
// characters are returned unchanged.
func Quote(value string) string {
	if value == "" {
		return "''"
	}
	safe := true
	for _, r := range value {
		if !isSafe(r) {
			safe = false
			break
		}
	}
	if safe {
		return value
	}
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

func isSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("_@%+=:,./-", r)
}

// Script accumulates blocks behind a leading `set -x` so the shell echoes each
// command as it runs.
type Script struct {
	b      strings.Builder
	blocks int
}

// NewScript starts an empty script.
func NewScript() *Script {
	s := &Script{}
	s.b.WriteString("set -x\n")
	return s
}

// Add appends a normalized block.
func (s *Script) Add(text string) {
	s.b.WriteString(Block(text))
	s.blocks++
}

// Empty reports whether no blocks were added.
func (s *Script) Empty() bool {
	return s.blocks == 0
}

// String returns the composed script.
func (s *Script) String() string {
	return s.b.String()
}
