package page

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"shortmovie-about/internal/apperrors"
)

// ImageServer resolves and fetches card images by their relative path.
type ImageServer interface {
	URL(path string) string
	Probe(ctx context.Context, path string) error
}

type HTTPImageServer struct {
	client  *http.Client
	baseURL string
}

func NewHTTPImageServer(baseURL string, timeout time.Duration) *HTTPImageServer {
	return &HTTPImageServer{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *HTTPImageServer) URL(path string) string {
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.baseURL + path
}

// Probe asks the image server for the image headers only. Any 2xx
// response is a successful load.
func (s *HTTPImageServer) Probe(ctx context.Context, path string) error {
	const op = "page.HTTPImageServer.Probe"

	if path == "" {
		return fmt.Errorf("%s: empty image path", op)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.URL(path), nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: %w: %d", op, apperrors.ErrImageStatus, resp.StatusCode)
	}

	return nil
}
