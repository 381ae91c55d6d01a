package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// Messages the gateway answers with when it cannot produce a backend reply.
const (
	MsgUnreachable   = "Error conectando al backend"
	MsgNotConfigured = "BACKEND_URL no configurada"
)

// Response is a fully read backend response.
type Response struct {
	StatusCode  int
	Status      string
	ContentType string
	Body        []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Sample returns at most n bytes of the body as text.
func (r *Response) Sample(n int) string {
	if len(r.Body) <= n {
		return string(r.Body)
	}
	return string(r.Body[:n])
}

// Forward performs one backend call and reads the whole response. Every
// returned error means the backend could not be reached or read.
func Forward(
	ctx context.Context,
	client *http.Client,
	method, url string,
	header http.Header,
	body []byte,
) (*Response, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build backend request: %w", err)
	}
	req.Header = header.Clone()

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read backend response: %w", err)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

// Relay writes res to w: same status, same bytes, the backend content type or
// application/json. No other backend header is copied, Set-Cookie included.
func Relay(w http.ResponseWriter, res *Response) {
	ct := res.ContentType
	if ct == "" {
		ct = "application/json"
	}

	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(res.StatusCode)
	_, _ = w.Write(res.Body)
}
