// Package httputil fetches the pixel size of remote images.
//
// # Overview
//
// Layout needs the intrinsic size of every image a document shows. Local
// files are probed directly; http(s) references go through an [ImageProber]:
//
//   - [Cache]: file-based cache of probed sizes, keyed by URL
//   - [Retry]: retry with exponential backoff for transient failures
//
// # Probing
//
// [ImageProber.Size] downloads at most [DefaultMaxBytes] of the image and
// decodes only its header (PNG, JPEG, GIF, BMP, WebP):
//
//	cache, err := httputil.NewCache("", 7*24*time.Hour)
//	prober := httputil.NewImageProber(cache)
//	w, h, err := prober.Size(ctx, "https://example.com/logo.png")
//
// Network errors, 429 and 5xx responses are retried. Other statuses fail
// immediately.
//
// # Configuration
//
// Defaults:
//
//   - Cache directory: $XDG_CACHE_HOME/uxl/images
//   - Attempts: 3, first delay 200ms
//   - Request timeout: 10s
package httputil
