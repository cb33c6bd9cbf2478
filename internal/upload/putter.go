package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ObjectPutter uploads one object (or object part) to a presigned URL.
// The URL carries its own authorization; no storage credentials exist on
// the client side.
type ObjectPutter interface {
	Put(ctx context.Context, url, contentType string, body io.Reader, size int64, onProgress func(sent int64)) (etag string, err error)
}

// HTTPPutter is the ObjectPutter over plain HTTP PUT.
type HTTPPutter struct {
	httpClient *http.Client
}

// NewHTTPPutter creates a putter. Presigned-part uploads can be long, so
// the client has no overall timeout; cancellation comes from the context.
func NewHTTPPutter() *HTTPPutter {
	return &HTTPPutter{
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// Put sends the body with the exact byte length and returns the response
// ETag. onProgress, when set, receives the running byte count.
func (p *HTTPPutter) Put(ctx context.Context, url, contentType string, body io.Reader, size int64, onProgress func(sent int64)) (string, error) {
	reader := body
	if onProgress != nil {
		reader = &progressReader{r: body, onProgress: onProgress}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, reader)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("storage returned status %d: %s", resp.StatusCode, string(data))
	}

	return resp.Header.Get("ETag"), nil
}

// progressReader counts bytes as the transport consumes them.
type progressReader struct {
	r          io.Reader
	sent       int64
	onProgress func(sent int64)
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.sent += int64(n)
		pr.onProgress(pr.sent)
	}
	return n, err
}
