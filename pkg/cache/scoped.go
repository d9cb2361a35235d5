package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants (or several
// deployments sharing one Redis) keep separate namespaces.
//
// Example usage:
//
//	// One namespace per API deployment
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "wordcloud:prod:")
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
func (k *ScopedKeyer) LayoutKey(labelsHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(labelsHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
