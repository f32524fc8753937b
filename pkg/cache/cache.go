package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys. Implementations must be
// safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// =============================================================================
// Keys
// =============================================================================

// DefaultTTL is how long layouts and artifacts stay cached.
const DefaultTTL = 24 * time.Hour

// Keyer builds cache keys for each pipeline stage. Source hashes cover the
// UXL text and every parser setting, so keys need only add stage settings.
type Keyer interface {
	// LayoutKey identifies the layout of one page.
	LayoutKey(sourceHash string, opts LayoutKeyOpts) string

	// MapKey identifies the navigation map of a document.
	MapKey(sourceHash string, opts MapKeyOpts) string

	// ArtifactKey identifies a rendered output of a layout or map.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the settings that change a page layout.
type LayoutKeyOpts struct {
	Page       string  `json:"page"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Scrollbar  float64 `json:"scrollbar"`
	CharWidth  float64 `json:"char_width"`
	LineHeight float64 `json:"line_height"`
}

// MapKeyOpts holds the settings that change a navigation map.
type MapKeyOpts struct {
	ColumnGap float64 `json:"column_gap"`
	RowGap    float64 `json:"row_gap"`
	Scale     float64 `json:"scale"`
}

// ArtifactKeyOpts holds the settings that change a rendered output.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Style  string  `json:"style"`
	Seed   uint64  `json:"seed,omitempty"`
	Links  bool    `json:"links,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(sourceHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sourceHash, opts)
}

// MapKey implements [Keyer].
func (DefaultKeyer) MapKey(sourceHash string, opts MapKeyOpts) string {
	return hashKey("map", sourceHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
