package cache

import "strings"

// ScopedKeyer prefixes every key of an inner Keyer so several projects can
// share one Redis or MongoDB backend. It backs the [cache] prefix setting.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer scopes inner (nil means the default keyer) under prefix.
// A prefix without a trailing ':' gets one, so "shop" and "shop:" match.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(sourceHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(sourceHash, opts)
}

func (k *ScopedKeyer) MapKey(sourceHash string, opts MapKeyOpts) string {
	return k.prefix + k.inner.MapKey(sourceHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
