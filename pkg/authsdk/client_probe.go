package authsdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ProbeResult is an unclassified backend answer.
type ProbeResult struct {
	StatusCode  int
	Status      string
	ContentType string
	Body        []byte
}

// OK reports a 2xx status.
func (p *ProbeResult) OK() bool {
	return p.StatusCode >= 200 && p.StatusCode < 300
}

// Probe sends one raw request to path (or to an absolute URL) and returns
// whatever came back. Only transport failures are errors. The secret and
// no-store headers are added as for every other call.
func (c *Client) Probe(
	ctx context.Context,
	method, path string,
	body []byte,
	header http.Header,
) (*ProbeResult, error) {
	target := path
	if !isAbsolute(path) {
		target = c.BaseURL + path
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("probe: failed to create request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if c.SecretKey != "" {
		req.Header.Set(SecretHeader, c.SecretKey)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &UnreachableError{Op: "probe", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnreachableError{Op: "probe", Err: fmt.Errorf("read body: %w", err)}
	}

	return &ProbeResult{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

func isAbsolute(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
