// Package deps reports whether the external tools prm scripts rely on are
// installed.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary prm relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// ScriptRequirements lists the binaries invoked by composed clean/upload
// scripts. rclone and tar are passed in because scripts call them by absolute
// path.
func ScriptRequirements(rcloneCommand, tarCommand string) []Requirement {
	return []Requirement{
		{Name: "sh", Command: "sh", Description: "Runs composed scripts"},
		{Name: "rclone", Command: rcloneCommand, Description: "Required for upload"},
		{Name: "tar", Command: tarCommand, Description: "Required for upload tarballs"},
		{Name: "find", Command: "find", Description: "Required for clean"},
		{Name: "date", Command: "date", Description: "Names upload tarballs", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Command = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Satisfied reports whether every non-optional requirement is available.
func Satisfied(statuses []Status) bool {
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			return false
		}
	}
	return true
}
