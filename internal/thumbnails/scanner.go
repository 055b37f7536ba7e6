package thumbnails

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
)

const (
	// BundleSuffix marks second-level directories that hold a metadata bundle.
	BundleSuffix = ".bundle"
	// DefaultUpdateRate is the number of bundles between progress snapshots.
	DefaultUpdateRate = 50
)

// IndexPath is the index file location relative to a bundle.
var IndexPath = filepath.Join("Contents", "Indexes", "index-sd.bif")

var (
	// ErrScanRootNotFound reports a missing Media/localhost directory.
	ErrScanRootNotFound = errors.New("scan root not found")
	// ErrNoBundles reports a percentage requested for an empty scan.
	ErrNoBundles = errors.New("no bundles found")
)

// Root returns the bundle root under a Plex Media Server data directory.
func Root(plexMediaServerPath string) string {
	return filepath.Join(plexMediaServerPath, "Media", "localhost")
}

// Counts accumulates scan totals.
type Counts struct {
	Total   int
	Missing int
}

// Processed is the number of bundles that already have an index.
func (c Counts) Processed() int {
	return c.Total - c.Missing
}

// MissingPercent returns Missing as a percentage of Total, rounded to two
// decimals.
func (c Counts) MissingPercent() (float64, error) {
	if c.Total == 0 {
		return 0, ErrNoBundles
	}
	pct := float64(c.Missing) * 100 / float64(c.Total)
	return math.Round(pct*100) / 100, nil
}

// Scanner walks a bundle root.
type Scanner struct {
	Root string
	// UpdateRate is the number of bundles between OnProgress calls; values
	// below 1 use DefaultUpdateRate.
	UpdateRate int
	// OnMissing receives each bundle lacking an index, relative to Root.
	OnMissing func(rel string)
	// OnProgress receives a running snapshot every UpdateRate bundles.
	OnProgress func(Counts)
}

// Scan walks Root and returns the final counts.
func (s *Scanner) Scan(ctx context.Context) (Counts, error) {
	var counts Counts

	info, err := os.Stat(s.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return counts, fmt.Errorf("%w: %s", ErrScanRootNotFound, s.Root)
		}
		return counts, fmt.Errorf("stat scan root: %w", err)
	}
	if !info.IsDir() {
		return counts, fmt.Errorf("%w: %s is not a directory", ErrScanRootNotFound, s.Root)
	}

	rate := s.UpdateRate
	if rate < 1 {
		rate = DefaultUpdateRate
	}
	lastUpdate := 0

	groups, err := os.ReadDir(s.Root)
	if err != nil {
		return counts, fmt.Errorf("read scan root: %w", err)
	}
	for _, group := range groups {
		if err := ctx.Err(); err != nil {
			return counts, err
		}
		groupPath := filepath.Join(s.Root, group.Name())
		if !isDir(groupPath, group) {
			continue
		}
		bundles, err := os.ReadDir(groupPath)
		if err != nil {
			return counts, fmt.Errorf("read %s: %w", groupPath, err)
		}
		for _, bundle := range bundles {
			if !strings.HasSuffix(bundle.Name(), BundleSuffix) {
				continue
			}
			bundlePath := filepath.Join(groupPath, bundle.Name())
			if !isDir(bundlePath, bundle) {
				continue
			}
			counts.Total++
			if !exists(filepath.Join(bundlePath, IndexPath)) {
				counts.Missing++
				if s.OnMissing != nil {
					s.OnMissing(filepath.Join(group.Name(), bundle.Name()))
				}
			}
			if s.OnProgress != nil && counts.Total-lastUpdate >= rate {
				s.OnProgress(counts)
				lastUpdate = counts.Total
			}
		}
	}
	return counts, nil
}

// isDir follows symlinks the way a plain stat would.
func isDir(path string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir()
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
