package pipeline

import (
	"context"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/uxl/pkg/document"
	"github.com/matzehuels/uxl/pkg/httputil"
	"github.com/matzehuels/uxl/pkg/layout"
)

// RemoteSizer reports the pixel size of an http(s) image.
// [httputil.ImageProber] implements it.
type RemoteSizer interface {
	Size(ctx context.Context, url string) (w, h int, err error)
}

// ProbeImages reads the dimensions of every image a document refers to
// (SRC: of images, BG: of frames). Local references are resolved against
// dir; http(s) references go to remote, and are skipped when it is nil.
// Unreadable images keep a zero intrinsic size.
func ProbeImages(ctx context.Context, doc *document.Document, dir string, remote RemoteSizer, logger *log.Logger) *layout.ImageSizes {
	sizes := layout.NewImageSizes()
	seen := make(map[string]bool)
	doc.Walk(func(n document.Node) bool {
		var src string
		switch v := n.(type) {
		case *document.Image:
			src = v.Src
		case *document.Frame:
			src = v.Background
		}
		if src == "" || seen[src] {
			return true
		}
		seen[src] = true

		var (
			size layout.Size
			err  error
		)
		if httputil.IsRemote(src) && remote != nil {
			size, err = probeRemote(ctx, remote, src)
		} else {
			size, err = probeImage(dir, src)
		}
		if err != nil {
			if logger != nil {
				logger.Debug("skipping image", "src", src, "error", err)
			}
			return true
		}
		sizes.Set(src, size)
		return true
	})
	return sizes
}

func probeImage(dir, src string) (layout.Size, error) {
	if isRemote(src) {
		return layout.Size{}, errRemoteImage
	}
	path := src
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, filepath.FromSlash(src))
	}
	f, err := os.Open(path)
	if err != nil {
		return layout.Size{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return layout.Size{}, err
	}
	return layout.Size{W: float64(cfg.Width), H: float64(cfg.Height)}, nil
}

func probeRemote(ctx context.Context, remote RemoteSizer, src string) (layout.Size, error) {
	w, h, err := remote.Size(ctx, src)
	if err != nil {
		return layout.Size{}, err
	}
	return layout.Size{W: float64(w), H: float64(h)}, nil
}

var errRemoteImage = errors.New("remote image")

func isRemote(src string) bool {
	return strings.Contains(src, "://") || strings.HasPrefix(src, "data:")
}
