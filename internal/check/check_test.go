package check

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/wsi2fiona/internal/config"
	"github.com/backmassage/wsi2fiona/internal/upload"
)

// recLogger records formatted lines per level.
type recLogger struct {
	lines map[string][]string
}

func newRecLogger() *recLogger { return &recLogger{lines: map[string][]string{}} }

func (l *recLogger) add(level, format string, args ...interface{}) {
	l.lines[level] = append(l.lines[level], fmt.Sprintf(format, args...))
}

func (l *recLogger) Info(f string, a ...interface{})    { l.add("info", f, a...) }
func (l *recLogger) Success(f string, a ...interface{}) { l.add("success", f, a...) }
func (l *recLogger) Warn(f string, a ...interface{})    { l.add("warn", f, a...) }
func (l *recLogger) Error(f string, a ...interface{})   { l.add("error", f, a...) }
func (l *recLogger) Debug(f string, a ...interface{})   { l.add("debug", f, a...) }

func newEndpoint(t *testing.T, status int, useTLS bool) *httptest.Server {
	t.Helper()
	e := echo.New()
	e.HideBanner = true
	e.HEAD("/upload.php", func(c echo.Context) error {
		c.Response().Header().Set("Server", "fake-fiona")
		return c.NoContent(status)
	})
	var srv *httptest.Server
	if useTLS {
		srv = httptest.NewTLSServer(e)
	} else {
		srv = httptest.NewServer(e)
	}
	t.Cleanup(srv.Close)
	return srv
}

func TestProbe_Reachable(t *testing.T) {
	srv := newEndpoint(t, http.StatusMethodNotAllowed, false)
	res, err := Probe(context.Background(), srv.Client(), srv.URL+"/upload.php")
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	assert.Equal(t, "fake-fiona", res.Server)
	assert.Nil(t, res.TLS)
}

func TestProbe_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "ftp://host/x", "/relative/upload.php"} {
		_, err := Probe(context.Background(), http.DefaultClient, raw)
		assert.ErrorIs(t, err, ErrInvalidURL, raw)
	}
}

func TestRunCheck_TLSPolicy(t *testing.T) {
	srv := newEndpoint(t, http.StatusOK, true)
	cfg := config.DefaultConfig()
	cfg.UploadURL = srv.URL + "/upload.php"

	log := newRecLogger()
	assert.True(t, RunCheck(context.Background(), &cfg, log, upload.NewHTTPClient(false)))
	assert.Contains(t, log.lines["warn"], "TLS verification: disabled")
	assert.NotEmpty(t, log.lines["success"])

	cfg.TLSVerify = true
	log = newRecLogger()
	assert.False(t, RunCheck(context.Background(), &cfg, log, upload.NewHTTPClient(true)))
	assert.Contains(t, log.lines["info"], "TLS verification: enabled")
	assert.NotEmpty(t, log.lines["error"])
}

func TestRunCheck_Unreachable(t *testing.T) {
	srv := newEndpoint(t, http.StatusOK, false)
	cfg := config.DefaultConfig()
	cfg.UploadURL = srv.URL + "/upload.php"
	srv.Close()

	log := newRecLogger()
	assert.False(t, RunCheck(context.Background(), &cfg, log, http.DefaultClient))
	require.Len(t, log.lines["error"], 1)
	assert.Contains(t, log.lines["error"][0], "Endpoint not reachable")
}

func TestRunCheck_ServerErrorWarns(t *testing.T) {
	srv := newEndpoint(t, http.StatusBadGateway, false)
	cfg := config.DefaultConfig()
	cfg.UploadURL = srv.URL + "/upload.php"

	log := newRecLogger()
	assert.True(t, RunCheck(context.Background(), &cfg, log, srv.Client()))
	assert.Contains(t, log.lines["warn"], "Endpoint reported a server error; uploads may fail")
}
