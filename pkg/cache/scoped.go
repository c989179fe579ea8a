package cache

// ScopedKeyer wraps a Keyer with a prefix.
// The server uses it to keep its entries apart from other users of a
// shared Redis instance:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "tilejar:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(presetHash string) string {
	return k.prefix + k.inner.LayoutKey(presetHash)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(presetHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(presetHash, opts)
}

// PreviewKey generates a prefixed key for preview caching.
func (k *ScopedKeyer) PreviewKey(presetHash string, width, height int) string {
	return k.prefix + k.inner.PreviewKey(presetHash, width, height)
}
