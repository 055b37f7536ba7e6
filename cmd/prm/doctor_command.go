package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"prm/internal/deps"
	"prm/internal/maintenance"
	"prm/internal/preflight"
	"prm/internal/services/rclone"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that required tools, directories and mounts are in place",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := ctx.freshStore()
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			statuses := deps.CheckBinaries(deps.ScriptRequirements(rclone.ResolveBinary(maintenance.RcloneBinary), tarCommand()))
			depLines, depProblems := dependencyLines(statuses, colorize)
			checkLines, checkProblems := preflightLines(preflight.RunAll(store), colorize)

			lines := append(renderSectionHeader("Dependencies", colorize), depLines...)
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Configuration", colorize)...)
			lines = append(lines, checkLines...)
			fmt.Fprintln(out, strings.Join(lines, "\n"))

			if problems := depProblems + checkProblems; problems > 0 {
				ctx.componentLogger("doctor").Warn("doctor checks failed", "problems", problems)
				return fmt.Errorf("doctor found %d problem(s)", problems)
			}
			return nil
		},
	}
}

func dependencyLines(statuses []deps.Status, colorize bool) ([]string, int) {
	lines := make([]string, 0, len(statuses))
	problems := 0
	for _, status := range statuses {
		kind, message := statusOK, status.Command
		if !status.Available {
			kind, message = statusError, status.Detail
			if status.Optional {
				kind = statusWarn
			} else {
				problems++
			}
		}
		if status.Description != "" {
			message = strings.TrimSpace(message + " (" + status.Description + ")")
		}
		lines = append(lines, renderStatusLine(status.Name, kind, message, colorize))
	}
	return lines, problems
}

func preflightLines(results []preflight.Result, colorize bool) ([]string, int) {
	lines := make([]string, 0, len(results))
	problems := 0
	for _, result := range results {
		kind := statusOK
		switch {
		case result.Skipped:
			kind = statusInfo
		case !result.Passed:
			kind = statusError
			problems++
		}
		lines = append(lines, renderStatusLine(result.Name, kind, result.Detail, colorize))
	}
	return lines, problems
}

// tarCommand prefers the absolute path composed scripts use.
func tarCommand() string {
	if info, err := os.Stat(maintenance.TarBinary); err == nil && !info.IsDir() {
		return maintenance.TarBinary
	}
	return "tar"
}
