package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The HTTP server uses it so its entries never collide with CLI entries
// written to the same backend.
//
// Example usage:
//
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "serve:")
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

// ReportKey generates a prefixed key for report caching.
func (k *ScopedKeyer) ReportKey(inputHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(inputHash, opts)
}

// DOTKey generates a prefixed key for diagram caching.
func (k *ScopedKeyer) DOTKey(inputHash string, opts DOTKeyOpts) string {
	return k.prefix + k.inner.DOTKey(inputHash, opts)
}
