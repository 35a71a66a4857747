package cache

// Cache is a key-value store for values that can be recomputed. A miss is
// never an error.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Put(key string, value V)
}
