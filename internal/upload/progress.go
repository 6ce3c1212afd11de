package upload

import (
	"errors"
	"io"
	"sync"
)

// ProgressFunc receives cumulative progress for one file. name is the
// file's base name; done counts bytes read from the file so far.
type ProgressFunc func(name string, done, total int64)

var errReaderClosed = errors.New("upload: read after close")

// progressReader reports every successful Read to fn. After Close it
// returns errReaderClosed and no longer calls fn.
type progressReader struct {
	mu     sync.Mutex
	r      io.Reader
	name   string
	total  int64
	done   int64
	fn     ProgressFunc
	closed bool
}

func (p *progressReader) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, errReaderClosed
	}
	n, err := p.r.Read(b)
	if n > 0 {
		p.done += int64(n)
		if p.fn != nil {
			p.fn(p.name, p.done, p.total)
		}
	}
	return n, err
}

// Close is idempotent and waits for an in-flight Read to return.
func (p *progressReader) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

// Done returns the number of file bytes read so far.
func (p *progressReader) Done() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}
