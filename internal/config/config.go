// Package config holds runtime configuration: defaults, optional YAML file,
// CLI flag parsing, and validation.
package config

import (
	"errors"
	"strings"
)

// DefaultUploadURL is the FIONA Attach endpoint slides are posted to.
const DefaultUploadURL = "https://fiona.ihelse.net/applications/Attach/upload.php"

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Sentinel errors returned by Validate. Both map to the negative exit code.
var (
	ErrMissingProject = errors.New("project name cannot be empty")
	ErrMissingEvent   = errors.New("event name cannot be empty")
	ErrMissingURL     = errors.New("upload URL cannot be empty")
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [LoadFile], then by [ParseFlags]. After
// [Config.Validate] succeeds it is treated as read-only.
type Config struct {
	// Run identity (required).
	ProjectName string
	EventName   string

	// Target file or directory (positional arg).
	Target string

	// Endpoint.
	UploadURL string // Default: DefaultUploadURL.
	TLSVerify bool   // Default: false, matching the legacy script's verify=False.

	// Behavior flags.
	DryRun    bool
	CheckOnly bool

	// Display and logging.
	Verbose    bool
	ColorMode  ColorMode // Default: "auto".
	LogFile    string
	ConfigFile string // Path given via --config; empty when none.
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() Config {
	return Config{
		UploadURL: DefaultUploadURL,
		TLSVerify: false,
		ColorMode: ColorAuto,
	}
}

// Validate trims the run identity and checks that the required values are
// present. Project name is checked before event name. In CheckOnly mode the
// run identity is not required.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	c.UploadURL = strings.TrimSpace(c.UploadURL)
	if c.UploadURL == "" {
		return ErrMissingURL
	}

	c.ProjectName = strings.TrimSpace(c.ProjectName)
	c.EventName = strings.TrimSpace(c.EventName)
	if c.CheckOnly {
		return nil
	}
	if c.ProjectName == "" {
		return ErrMissingProject
	}
	if c.EventName == "" {
		return ErrMissingEvent
	}
	return nil
}
