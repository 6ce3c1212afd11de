// Package display renders console output that is not a log line: the
// banner, byte sizes, and the per-file upload progress bar.
package display

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatBytes returns a human-readable IEC size (e.g. "1.5 GiB").
func FormatBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}

// FormatRate returns a transfer rate such as "12 MiB/s". Zero elapsed time
// yields "n/a".
func FormatRate(n int64, elapsed time.Duration) string {
	if elapsed <= 0 || n <= 0 {
		return "n/a"
	}
	perSec := float64(n) / elapsed.Seconds()
	return humanize.IBytes(uint64(perSec)) + "/s"
}

// FormatPercent returns done/total as a whole percentage clamped to 0..100.
func FormatPercent(done, total int64) string {
	return fmt.Sprintf("%3d%%", percent(done, total))
}

func percent(done, total int64) int {
	if total <= 0 {
		return 100
	}
	p := int(done * 100 / total)
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
