package config

// This file implements CLI flag parsing and help text.
// The two REDCap identity flags keep their snake_case names so existing
// invocations of the legacy script keep working.

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// ErrHelp and ErrVersion are returned by ParseFlags when the user asked for
// help or version output. The caller prints and exits 0.
var (
	ErrHelp    = errors.New("help requested")
	ErrVersion = errors.New("version requested")
)

// flagSetName is the program name shown in parse errors and help.
const flagSetName = "wsi2fiona"

// ParseFlags parses args (without the program name) into cfg. When --config
// is given, the YAML file is applied first and explicit flags then win over
// it. The positional target is optional here; the caller decides what a
// missing target means.
func ParseFlags(cfg *Config, args []string) error {
	fs := pflag.NewFlagSet(flagSetName, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var ui uiFlags
	defineRunFlags(fs, cfg)
	defineEndpointFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &ui)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ErrHelp
		}
		return err
	}
	if ui.showHelp {
		return ErrHelp
	}
	if ui.showVersion {
		return ErrVersion
	}

	if cfg.ConfigFile != "" {
		fc, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return err
		}
		fc.apply(cfg, fs.Changed)
	}

	applyColorFlags(cfg, &ui)

	rest := fs.Args()
	switch len(rest) {
	case 0:
	case 1:
		cfg.Target = rest[0]
	default:
		return fmt.Errorf("expected one file or directory, got %d arguments", len(rest))
	}
	return nil
}

// uiFlags holds flags that are applied after Parse or trigger an early exit.
type uiFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineRunFlags registers the REDCap identity and behavior flags.
func defineRunFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.ProjectName, "project_name", cfg.ProjectName, "REDCap project name (required)")
	fs.StringVar(&cfg.EventName, "redcap_event_name", cfg.EventName, "REDCap event name (required)")
	fs.BoolVarP(&cfg.DryRun, "dry-run", "d", cfg.DryRun, "Parse and validate only; do not upload")
	fs.BoolVarP(&cfg.CheckOnly, "check", "c", cfg.CheckOnly, "Probe the upload endpoint and exit")
}

// defineEndpointFlags registers --upload-url, --tls-verify and --config.
func defineEndpointFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.UploadURL, "upload-url", cfg.UploadURL, "Multipart upload endpoint")
	fs.BoolVar(&cfg.TLSVerify, "tls-verify", cfg.TLSVerify, "Verify the endpoint's TLS certificate")
	fs.StringVarP(&cfg.ConfigFile, "config", "C", cfg.ConfigFile, "YAML config file")
}

// defineDisplayFlags registers color, verbosity, log file, version and help.
func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config, ui *uiFlags) {
	fs.BoolVar(&ui.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&ui.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")
	fs.StringVarP(&cfg.LogFile, "log", "l", cfg.LogFile, "Append logs to file")
	fs.BoolVarP(&ui.showVersion, "version", "V", false, "Print version and exit")
	fs.BoolVarP(&ui.showHelp, "help", "h", false, "Show this help and exit")
}

func applyColorFlags(cfg *Config, ui *uiFlags) {
	if ui.noColor {
		cfg.ColorMode = ColorNever
	} else if ui.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// PrintUsage writes the help text to w. Column-aligned for readability.
func PrintUsage(w io.Writer, version string) {
	const col1 = 32
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "wsi2fiona v" + version + " - import a folder of WSI files into FIONA"},
		{"", ""},
		{"  wsi2fiona [OPTIONS] --project_name <name> --redcap_event_name <event> <fileOrDirname>", ""},
		{"", ""},
		{"Required", ""},
		{"  --project_name <name>", "REDCap project name (e.g. PIV_WP6)"},
		{"  --redcap_event_name <event>", "REDCap event name (e.g. 01)"},
		{"", ""},
		{"Endpoint", ""},
		{"  --upload-url <url>", "Upload endpoint (default: FIONA Attach)"},
		{"  --tls-verify", "Verify the endpoint's TLS certificate (default: off)"},
		{"  -C, --config <path>", "YAML config file; flags override it"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Parse and validate only; do not upload"},
		{"  -c, --check", "Probe the upload endpoint and exit"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(w)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(w, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(w, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
