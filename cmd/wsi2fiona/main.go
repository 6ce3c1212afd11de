// Command wsi2fiona uploads whole-slide images (.svs, .ndpi) to the FIONA
// REDCap attachment endpoint, deriving the record fields from each file name.
//
// It parses flags, validates the run identity, and either probes the
// endpoint (--check) or runs the discover/parse/upload pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/backmassage/wsi2fiona/internal/check"
	"github.com/backmassage/wsi2fiona/internal/config"
	"github.com/backmassage/wsi2fiona/internal/display"
	"github.com/backmassage/wsi2fiona/internal/logging"
	"github.com/backmassage/wsi2fiona/internal/pipeline"
	"github.com/backmassage/wsi2fiona/internal/term"
	"github.com/backmassage/wsi2fiona/internal/upload"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

const (
	exitOK         = 0
	exitFailed     = 1
	exitConfigFail = -1
)

func main() {
	os.Exit(run())
}

func run() int {
	// Bootstrap: no logger yet, errors go straight to stderr.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:]); err != nil {
		switch {
		case errors.Is(err, config.ErrHelp):
			config.PrintUsage(os.Stdout, version)
			return exitOK
		case errors.Is(err, config.ErrVersion):
			fmt.Printf("wsi2fiona %s (%s)\n", version, commit)
			return exitOK
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitConfigFail
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitConfigFail
	}

	if cfg.Target == "" && !cfg.CheckOnly {
		config.PrintUsage(os.Stdout, version)
		return exitOK
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitConfigFail
	}
	defer log.Close()

	display.PrintBanner(os.Stdout)
	if !cfg.TLSVerify {
		log.Warn("TLS certificate verification is disabled (use --tls-verify to enable)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, stopping…")
			cancel()
		case <-ctx.Done():
		}
	}()

	hc := upload.NewHTTPClient(cfg.TLSVerify)

	if cfg.CheckOnly {
		if !check.RunCheck(ctx, &cfg, log, hc) {
			return exitFailed
		}
		return exitOK
	}

	// Slides are addressed by absolute path so the uploaded file name is the
	// full source path.
	target, err := filepath.Abs(cfg.Target)
	if err != nil {
		log.Error("Cannot resolve %s: %v", cfg.Target, err)
		return exitConfigFail
	}
	cfg.Target = target

	log.Info("=== wsi2fiona v%s ===", version)
	log.Info("Project: %s", cfg.ProjectName)
	log.Info("Event:   %s", cfg.EventName)
	log.Info("Target:  %s", cfg.Target)
	log.Debug("Upload URL: %s", cfg.UploadURL)
	if cfg.DryRun {
		log.Warn("DRY RUN, nothing will be uploaded")
	}

	fsys := osfs.New("/")
	r := &pipeline.Runner{
		Config:   &cfg,
		Log:      log,
		FS:       fsys,
		Uploader: upload.NewClient(fsys, hc),
		Progress: display.NewProgressBar(os.Stdout, term.IsTerminal(os.Stdout), term.Width(os.Stdout, 80)),
	}
	stats, err := r.Run(ctx)
	if err != nil {
		log.Error("File discovery failed: %v", err)
		return exitFailed
	}
	if stats.Failed > 0 {
		return exitFailed
	}
	return exitOK
}
