package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"

	"github.com/backmassage/wsi2fiona/internal/config"
	"github.com/backmassage/wsi2fiona/internal/display"
	"github.com/backmassage/wsi2fiona/internal/logging"
	"github.com/backmassage/wsi2fiona/internal/naming"
	"github.com/backmassage/wsi2fiona/internal/payload"
	"github.com/backmassage/wsi2fiona/internal/upload"
)

// Uploader sends one slide and its payload. *upload.Client implements it.
type Uploader interface {
	Upload(ctx context.Context, url string, p payload.Payload, path string, progress upload.ProgressFunc) (*upload.Result, error)
}

// Runner holds everything a batch run needs. Config must already be
// validated. Progress may be nil to disable the progress bar.
type Runner struct {
	Config   *config.Config
	Log      *logging.Logger
	FS       billy.Filesystem
	Uploader Uploader
	Progress *display.ProgressBar
}

// Run discovers slides under Config.Target and processes them one at a
// time. The returned error is non-nil only when discovery itself fails;
// per-file problems are reflected in the stats.
func (r *Runner) Run(ctx context.Context) (RunStats, error) {
	var stats RunStats
	cfg, log := r.Config, r.Log

	files, err := Discover(r.FS, cfg.Target, func(path string, err error) {
		log.Warn("Skipping unreadable %s: %v", path, err)
	})
	if err != nil {
		return stats, fmt.Errorf("discover %s: %w", cfg.Target, err)
	}
	if len(files) == 0 {
		log.Info("No WSI files found in %s.", cfg.Target)
		return stats, nil
	}

	stats.Total = len(files)
	log.Info("Found %d WSI images in folder, start import now", stats.Total)
	fmt.Println()

	for i, path := range files {
		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}
		stats.Current = i + 1
		r.processFile(ctx, path, &stats)
	}

	logSummary(cfg, log, &stats)
	return stats, nil
}

// processFile handles one slide: parse → build → validate → upload.
func (r *Runner) processFile(ctx context.Context, path string, stats *RunStats) {
	cfg, log := r.Config, r.Log
	basename := filepath.Base(path)
	log.Info("[%d/%d] %s", stats.Current, stats.Total, basename)

	// --- Parse filename ---
	name, ok := naming.ParseFilename(basename)
	if !ok {
		log.Warn("Nothing for %s", basename)
		stats.Skipped++
		return
	}

	// --- Build and validate payload ---
	p := payload.Build(cfg.ProjectName, cfg.EventName, name)
	if err := p.Validate(); err != nil {
		var missing *payload.MissingFieldError
		if errors.As(err, &missing) {
			log.Error("Missing %s, cannot import", missing.Field)
		}
		log.Error("Not all values %s found in %s, skip upload",
			strings.Join(payload.RequiredFields, ", "), basename)
		log.Debug("Payload: %s", p.JSON())
		stats.Skipped++
		return
	}
	log.Info("Import: %s", p.JSON())

	// --- Dry-run ---
	if cfg.DryRun {
		log.Success("[DRY] Would upload %s", basename)
		stats.Uploaded++
		return
	}

	// --- Upload ---
	var progress upload.ProgressFunc
	if r.Progress != nil {
		progress = r.Progress.Update
	}
	res, err := r.Uploader.Upload(ctx, cfg.UploadURL, p, path, progress)
	if r.Progress != nil {
		r.Progress.Finish()
	}
	if err != nil {
		if ctx.Err() != nil {
			log.Warn("Upload of %s interrupted", basename)
		}
		log.Error("Upload failed: %v", err)
		if res != nil && strings.TrimSpace(res.Body) != "" {
			log.Error("  Response: %s", firstLine(res.Body))
		}
		stats.Failed++
		return
	}

	stats.Uploaded++
	stats.BytesSent += res.BytesSent
	log.Success("Uploaded %s in %s (%s, %s, %s)",
		display.FormatBytes(res.BytesSent), res.Elapsed.Round(time.Millisecond),
		display.FormatRate(res.BytesSent, res.Elapsed), res.Status, basename)
	log.Debug("  request id %s, part type %s", res.RequestID, res.ContentType)
}

// firstLine returns the first non-empty line of s, trimmed.
func firstLine(s string) string {
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			return l
		}
	}
	return ""
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	fmt.Println()
	log.Info("==============================")
	verb := "uploaded"
	if cfg.DryRun {
		verb = "would upload"
	}
	log.Info("Done: %d %s, %d skipped, %d failed", stats.Uploaded, verb, stats.Skipped, stats.Failed)
	log.Info("  Total files processed: %d of %d", stats.Processed(), stats.Total)
	if !cfg.DryRun {
		log.Info("  Total bytes sent: %s", display.FormatBytes(stats.BytesSent))
	}
	if stats.Failed > 0 {
		log.Warn("  %d upload(s) failed; re-run on those files once the endpoint is reachable", stats.Failed)
	}
}
