package resource

import (
	"context"
	"io"
)

type limitedReader struct {
	ctx context.Context
	r   io.Reader
	c   *Controller
}

// NewReader returns a Reader that charges every byte read from r against the
// IO limit of c. Without an IO limit r is returned unchanged.
func NewReader(ctx context.Context, r io.Reader, c *Controller) io.Reader {
	if c == nil || c.ioLimiter == nil {
		return r
	}
	return &limitedReader{ctx: ctx, r: r, c: c}
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if burst := l.c.ioLimiter.Burst(); len(p) > burst {
		p = p[:burst]
	}
	n, err := l.r.Read(p)
	if n > 0 {
		if werr := l.c.AcquireIO(l.ctx, n); werr != nil {
			return n, werr
		}
	}
	return n, err
}
