package apod

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"
)

// ImageFetcher loads and decodes the picture a record points at.
type ImageFetcher interface {
	FetchImage(ctx context.Context, rawURL string) (image.Image, error)
}

// Ensure ImageLoader implements ImageFetcher at compile time.
var _ ImageFetcher = (*ImageLoader)(nil)

// ImageLoader downloads images over HTTP and decodes JPEG, PNG and GIF.
type ImageLoader struct {
	http      *http.Client
	userAgent string
	maxBytes  int64
}

const (
	imageTimeout  = 60 * time.Second
	maxImageBytes = 32 << 20
)

// NewImageLoader returns a loader with conservative size and time limits.
func NewImageLoader() *ImageLoader {
	return &ImageLoader{
		http:      &http.Client{Timeout: imageTimeout},
		userAgent: defaultUserAgent,
		maxBytes:  maxImageBytes,
	}
}

// FetchImage downloads rawURL and decodes it.
func (l *ImageLoader) FetchImage(ctx context.Context, rawURL string) (image.Image, error) {
	if l == nil {
		return nil, fmt.Errorf("image loader is nil")
	}
	target := strings.TrimSpace(rawURL)
	if target == "" {
		return nil, fmt.Errorf("image url is empty")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Status: resp.StatusCode}
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, l.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
