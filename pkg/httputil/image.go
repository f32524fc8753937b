package httputil

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	// DefaultMaxBytes bounds the bytes read from one image response. Image
	// headers sit at the start of the file, so the limit only guards against
	// endless bodies.
	DefaultMaxBytes = 1 << 20

	DefaultAttempts = 3
	DefaultDelay    = 200 * time.Millisecond
	DefaultTimeout  = 10 * time.Second
)

// ErrNotRemote is returned for references that are not http(s) URLs.
var ErrNotRemote = errors.New("not an http(s) url")

// ImageProber reads the pixel size of remote images.
type ImageProber struct {
	Client   *http.Client
	Cache    *Cache // optional
	Attempts int
	Delay    time.Duration
	MaxBytes int64
}

type imageSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

// NewImageProber returns a prober with default limits. cache may be nil.
func NewImageProber(cache *Cache) *ImageProber {
	p := &ImageProber{
		Client:   &http.Client{Timeout: DefaultTimeout},
		Attempts: DefaultAttempts,
		Delay:    DefaultDelay,
		MaxBytes: DefaultMaxBytes,
	}
	if cache != nil {
		p.Cache = cache.Namespace("img:")
	}
	return p
}

// IsRemote reports whether src is an http(s) URL.
func IsRemote(src string) bool {
	s := strings.ToLower(src)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Size returns the width and height of the image at url.
func (p *ImageProber) Size(ctx context.Context, url string) (int, int, error) {
	if !IsRemote(url) {
		return 0, 0, ErrNotRemote
	}

	var size imageSize
	if p.Cache != nil {
		if ok, _ := p.Cache.Get(url, &size); ok {
			return size.W, size.H, nil
		}
	}

	err := Retry(ctx, p.Attempts, p.Delay, func() error {
		var err error
		size, err = p.fetch(ctx, url)
		return err
	})
	if err != nil {
		return 0, 0, err
	}

	if p.Cache != nil {
		_ = p.Cache.Set(url, size)
	}
	return size.W, size.H, nil
}

func (p *ImageProber) fetch(ctx context.Context, url string) (imageSize, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return imageSize{}, err
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return imageSize{}, ctx.Err()
		}
		return imageSize{}, &RetryableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return imageSize{}, &RetryableError{Err: fmt.Errorf("GET %s: %s", url, resp.Status)}
	case resp.StatusCode != http.StatusOK:
		return imageSize{}, fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	limit := p.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	cfg, _, err := image.DecodeConfig(io.LimitReader(resp.Body, limit))
	if err != nil {
		return imageSize{}, fmt.Errorf("decode %s: %w", url, err)
	}
	return imageSize{W: cfg.Width, H: cfg.Height}, nil
}
