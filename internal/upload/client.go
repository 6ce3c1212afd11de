package upload

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-git/go-billy/v5"
	"github.com/google/uuid"

	"github.com/backmassage/wsi2fiona/internal/payload"
)

const (
	// FileField is the form field carrying the slide itself.
	FileField = "files"

	// RequestIDHeader carries a per-upload id so server logs can be matched
	// with ours.
	RequestIDHeader = "X-Request-ID"

	maxBodyExcerpt  = 4 << 10
	defaultFileType = "application/octet-stream"
)

// Result is the outcome of one upload request.
type Result struct {
	RequestID   string
	StatusCode  int
	Status      string
	Body        string // First few KiB of the response body.
	ContentType string // Content-Type sent for the file part.
	BytesSent   int64  // File bytes streamed into the request body.
	Size        int64
	Elapsed     time.Duration
}

// OK reports whether the endpoint answered with a 2xx status.
func (r *Result) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Client uploads files read from a billy filesystem.
type Client struct {
	fs   billy.Filesystem
	http *http.Client
}

// NewClient returns a Client reading files from fs and sending requests
// with hc. A nil hc means NewHTTPClient(true).
func NewClient(fs billy.Filesystem, hc *http.Client) *Client {
	if hc == nil {
		hc = NewHTTPClient(true)
	}
	return &Client{fs: fs, http: hc}
}

// NewHTTPClient returns an http.Client without a timeout (slide uploads can
// run for a long time). When tlsVerify is false the server certificate is
// not checked.
func NewHTTPClient(tlsVerify bool) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: !tlsVerify, //nolint:gosec // operator-controlled via --tls-verify
	}
	return &http.Client{Transport: tr}
}

// Upload POSTs the payload fields and the file at path to url. The file
// part's filename is path exactly as given. progress may be nil; it is
// called from the transport goroutine sending the body and never after
// Upload returns.
//
// A transport failure returns a nil Result. A response outside 2xx returns
// both the Result and an error wrapping ErrUnexpectedStatus.
func (c *Client) Upload(ctx context.Context, url string, p payload.Payload, path string, progress ProgressFunc) (*Result, error) {
	f, err := c.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	info, err := c.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}

	contentType, err := detectContentType(f)
	if err != nil {
		return nil, fmt.Errorf("detect content type of %q: %w", path, err)
	}

	res := &Result{
		RequestID:   uuid.NewString(),
		ContentType: contentType,
		Size:        info.Size(),
	}
	head, tail, formType, err := encodeEnvelope(p, path, contentType)
	if err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}
	src := &progressReader{r: io.LimitReader(f, res.Size), name: filepath.Base(path), total: res.Size, fn: progress}
	// The transport may still hold the body when Do returns; closing src
	// first stops further reads of f and further progress calls.
	defer src.Close()
	body := io.MultiReader(bytes.NewReader(head), src, bytes.NewReader(tail))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, io.NopCloser(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.ContentLength = int64(len(head)) + res.Size + int64(len(tail))
	req.Header.Set("Content-Type", formType)
	req.Header.Set(RequestIDHeader, res.RequestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", url, err)
	}
	defer resp.Body.Close()

	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyExcerpt))
	_, _ = io.Copy(io.Discard, resp.Body)

	res.Elapsed = time.Since(start)
	src.Close()
	res.BytesSent = src.Done()
	res.StatusCode = resp.StatusCode
	res.Status = resp.Status
	res.Body = string(excerpt)

	if !res.OK() {
		return res, fmt.Errorf("post %s: %w: %s", url, ErrUnexpectedStatus, resp.Status)
	}
	return res, nil
}

// encodeEnvelope renders everything in the form except the file content:
// head holds the payload fields in wire order plus the file part header,
// tail holds the closing boundary. The file bytes go between the two, so
// the exact Content-Length is known before sending.
func encodeEnvelope(p payload.Payload, path, contentType string) (head, tail []byte, formType string, err error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, field := range p.Fields() {
		if err := mw.WriteField(field.Name, field.Value); err != nil {
			return nil, nil, "", err
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(FileField), escapeQuotes(path)))
	h.Set("Content-Type", contentType)
	if _, err := mw.CreatePart(h); err != nil {
		return nil, nil, "", err
	}
	headLen := buf.Len()
	if err := mw.Close(); err != nil {
		return nil, nil, "", err
	}
	all := buf.Bytes()
	return all[:headLen:headLen], all[headLen:], mw.FormDataContentType(), nil
}

// detectContentType sniffs the head of f and rewinds it.
func detectContentType(f billy.File) (string, error) {
	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	if mt == nil || mt.String() == "" {
		return defaultFileType, nil
	}
	return mt.String(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
