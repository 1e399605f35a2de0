package cache

// ScopedKeyer wraps a Keyer with a prefix so several hosts or venues can
// share one Redis instance without their entries colliding.
//
// Example usage:
//
//	// Keys for one box office
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "boxoffice:north:")
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
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(venueHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(venueHash, opts)
}

// Prefix returns the scope prefix.
func (k *ScopedKeyer) Prefix() string { return k.prefix }
