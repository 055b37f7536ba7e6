package thumbnails

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"prm/internal/validation"
)

// ReportOptions mirrors the `plex preview-thumbnails` output flags.
type ReportOptions struct {
	Summary    bool
	Print      bool
	JSON       bool
	Progress   bool
	UpdateRate int
}

// Validate rejects unusable flag combinations before any traversal.
func (o ReportOptions) Validate() error {
	switch {
	case !o.Summary && !o.Print:
		return validation.Failf("Summary or print must be given")
	case o.JSON && !o.Summary:
		return validation.Failf("Summary must be given when using JSON")
	case o.Progress && o.JSON:
		return validation.Failf("Progress does not support JSON")
	case o.Progress && !o.Summary:
		return validation.Failf("Summary must be given if using progress")
	case o.UpdateRate < 1:
		return validation.Failf("Update rate must be at least 1")
	}
	return nil
}

// Reporter renders scan events to Out.
type Reporter struct {
	Out     io.Writer
	Options ReportOptions
	// Overwrite rewrites the progress line in place (terminal output).
	Overwrite bool

	pending bool
	err     error
}

// Attach wires the reporter's callbacks into s according to Options.
func (r *Reporter) Attach(s *Scanner) {
	s.UpdateRate = r.Options.UpdateRate
	if r.Options.Print {
		s.OnMissing = r.Missing
	}
	if r.Options.Progress {
		s.OnProgress = r.Progress
	}
}

// Missing prints one bundle path.
func (r *Reporter) Missing(rel string) {
	r.endProgressLine()
	r.write(rel + "\n")
}

// Progress prints a running snapshot.
func (r *Reporter) Progress(c Counts) {
	line := fmt.Sprintf("Remaining: %d Processed: %d Total: %d Remaining: %s%%",
		c.Missing, c.Processed(), c.Total, percentString(c))
	if r.Overwrite {
		r.write("\r" + line)
		r.pending = true
		return
	}
	r.write(line + "\n")
}

type summaryJSON struct {
	Remaining int `json:"remaining"`
	Total     int `json:"total"`
}

// Summary prints the final report when Options.Summary is set.
func (r *Reporter) Summary(c Counts) error {
	r.endProgressLine()
	if !r.Options.Summary {
		return r.err
	}
	if r.Options.JSON {
		payload, err := json.Marshal(summaryJSON{Remaining: c.Missing, Total: c.Total})
		if err != nil {
			return err
		}
		r.write(string(payload) + "\n")
		return r.err
	}
	pct, err := c.MissingPercent()
	if err != nil {
		return err
	}
	r.write(fmt.Sprintf("Remaining: %d\nProcessed: %d\nTotal: %d\nRemaining: %s%%\n",
		c.Missing, c.Processed(), c.Total, formatPercent(pct)))
	return r.err
}

// Err returns the first write error.
func (r *Reporter) Err() error {
	return r.err
}

func (r *Reporter) endProgressLine() {
	if r.pending {
		r.write("\n")
		r.pending = false
	}
}

func (r *Reporter) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.Out, s)
}

func percentString(c Counts) string {
	pct, err := c.MissingPercent()
	if err != nil {
		return "0.0"
	}
	return formatPercent(pct)
}

// formatPercent prints the shortest representation, keeping one decimal for
// whole numbers (40 -> "40.0").
func formatPercent(pct float64) string {
	s := strconv.FormatFloat(pct, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
