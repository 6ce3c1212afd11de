// Package check implements --check mode: a HEAD probe of the upload
// endpoint that reports reachability and the TLS policy in effect.
package check

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/backmassage/wsi2fiona/internal/config"
)

// probeTimeout bounds the HEAD request; uploads themselves have no timeout.
const probeTimeout = 15 * time.Second

// ErrInvalidURL is returned by Probe when the upload URL is not an absolute
// http(s) URL.
var ErrInvalidURL = errors.New("upload URL must be an absolute http or https URL")

// Logger is the minimal logging interface needed by RunCheck.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// ProbeResult describes what the endpoint answered.
type ProbeResult struct {
	StatusCode int
	Status     string
	Server     string
	TLS        *tls.ConnectionState
	Elapsed    time.Duration
}

// Probe sends a HEAD request to rawURL with hc. Any HTTP answer counts as
// reachable, including 4xx/5xx: upload.php commonly rejects HEAD.
func Probe(ctx context.Context, hc *http.Client, rawURL string) (*ProbeResult, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidURL
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u.String(), nil)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return &ProbeResult{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Server:     resp.Header.Get("Server"),
		TLS:        resp.TLS,
		Elapsed:    time.Since(start),
	}, nil
}

// RunCheck runs the interactive --check flow and reports whether the
// endpoint was reachable.
func RunCheck(ctx context.Context, cfg *config.Config, log Logger, hc *http.Client) bool {
	log.Info("=== Endpoint Check ===")
	log.Info("Upload URL: %s", cfg.UploadURL)
	if cfg.TLSVerify {
		log.Info("TLS verification: enabled")
	} else {
		log.Warn("TLS verification: disabled")
	}

	res, err := Probe(ctx, hc, cfg.UploadURL)
	if err != nil {
		log.Error("Endpoint not reachable: %v", err)
		return false
	}

	log.Success("Endpoint answered %s in %s", res.Status, res.Elapsed.Round(time.Millisecond))
	if res.Server != "" {
		log.Debug("Server: %s", res.Server)
	}
	if res.TLS != nil {
		log.Info("TLS: %s", tls.VersionName(res.TLS.Version))
		if certs := res.TLS.PeerCertificates; len(certs) > 0 {
			log.Info("Certificate: %s (expires %s)",
				certs[0].Subject.CommonName, certs[0].NotAfter.Format("2006-01-02"))
		}
	}
	if res.StatusCode >= 500 {
		log.Warn("Endpoint reported a server error; uploads may fail")
	}
	return true
}
