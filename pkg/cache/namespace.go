package cache

// namespacedKeyer prefixes every key with "<ns>:". Several datasets or
// deployments can then share one Redis or Mongo backend.
type namespacedKeyer struct {
	inner Keyer
	ns    string
}

// NewNamespacedKeyer returns a keyer whose keys start with "ns:". An empty
// ns returns inner itself. A nil inner defaults to [DefaultKeyer].
func NewNamespacedKeyer(inner Keyer, ns string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	if ns == "" {
		return inner
	}
	return namespacedKeyer{inner: inner, ns: ns + ":"}
}

func (k namespacedKeyer) HTTPKey(namespace, key string) string {
	return k.ns + k.inner.HTTPKey(namespace, key)
}

func (k namespacedKeyer) DatasetKey(contentHash string, opts DatasetKeyOpts) string {
	return k.ns + k.inner.DatasetKey(contentHash, opts)
}

func (k namespacedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.ns + k.inner.LayoutKey(graphHash, opts)
}

func (k namespacedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.ns + k.inner.ArtifactKey(layoutHash, opts)
}
