package driven

// Cache is a bounded, thread-safe map from name to V.
// Evicting an entry only forgets the cached value.
type Cache[V any] interface {
	// Get returns the cached value and true, or the zero value and false.
	Get(key string) (V, bool)

	// Add stores value under key. When a new key is added to a full cache,
	// exactly one other entry is evicted first; the evicted key is returned.
	Add(key string, value V) (evicted string, ok bool)

	// Remove forgets key. It reports whether the key was cached.
	Remove(key string) bool

	// Len returns the number of cached entries.
	Len() int

	// Keys returns the cached keys in no particular order.
	Keys() []string
}
