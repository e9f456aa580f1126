package cache

// Keyer builds cache keys.
type Keyer interface {
	// HTTPKey returns the key for a registry response. Namespace identifies
	// the registry client ("npm:", "crates:") and key the resource.
	HTTPKey(namespace, key string) string
}

// DefaultKeyer produces unscoped "http:<namespace>:<key>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey implements [Keyer].
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// ScopedKeyer prefixes every key produced by an inner [Keyer].
//
//	npm := cache.NewScopedKeyer(nil, cache.Scope("https://registry.npmjs.org"))
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner uses [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// HTTPKey implements [Keyer].
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// Scope derives a short key prefix from an arbitrary string such as a
// registry base URL.
func Scope(s string) string {
	return Hash([]byte(s))[:12] + ":"
}
