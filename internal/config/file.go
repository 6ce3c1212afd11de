package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML form of the settings that make sense to
// pin per site. Pointer fields distinguish "unset" from the zero value.
type FileConfig struct {
	ProjectName string    `yaml:"project_name"`
	EventName   string    `yaml:"redcap_event_name"`
	UploadURL   string    `yaml:"upload_url"`
	TLSVerify   *bool     `yaml:"tls_verify"`
	LogFile     string    `yaml:"log_file"`
	Color       ColorMode `yaml:"color"`
}

// LoadFile reads and decodes a YAML config file. Unknown keys are rejected
// so typos surface instead of silently falling back to defaults.
func LoadFile(path string) (*FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %q: %w", path, err)
	}
	defer f.Close()

	var fc FileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return &fc, nil
}

// apply copies file values into cfg for every setting whose flag was not
// explicitly given on the command line.
func (fc *FileConfig) apply(cfg *Config, changed func(name string) bool) {
	if fc.ProjectName != "" && !changed("project_name") {
		cfg.ProjectName = fc.ProjectName
	}
	if fc.EventName != "" && !changed("redcap_event_name") {
		cfg.EventName = fc.EventName
	}
	if fc.UploadURL != "" && !changed("upload-url") {
		cfg.UploadURL = fc.UploadURL
	}
	if fc.TLSVerify != nil && !changed("tls-verify") {
		cfg.TLSVerify = *fc.TLSVerify
	}
	if fc.LogFile != "" && !changed("log") {
		cfg.LogFile = fc.LogFile
	}
	if fc.Color != "" && !changed("color") && !changed("no-color") {
		cfg.ColorMode = fc.Color
	}
}
