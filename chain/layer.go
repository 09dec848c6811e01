package chain

// Layer is a read-only key/value source held by a Map.
type Layer[K comparable, V any] interface {
	Lookup(key K) (V, bool)
	Keys() []K
}

type mapLayer[K comparable, V any] map[K]V

func (m mapLayer[K, V]) Lookup(key K) (V, bool) {
	v, ok := m[key]
	return v, ok
}

func (m mapLayer[K, V]) Keys() []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// FromMap adapts a Go map. The map is referenced, not copied, so later
// writes to it are visible through the chain.
func FromMap[K comparable, V any](m map[K]V) Layer[K, V] {
	return mapLayer[K, V](m)
}
