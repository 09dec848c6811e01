package chain

import (
	"iter"
	"slices"
	"strings"
)

// Normalizer maps a string key to its canonical form.
type Normalizer func(string) string

var safeKeyReplacer = strings.NewReplacer(" ", "_", "-", "_")

// SafeKey lower-cases s and turns spaces and dashes into underscores, so
// "Max Retries", "max-retries" and "max_retries" resolve to the same key.
func SafeKey(s string) string {
	return strings.ToLower(safeKeyReplacer.Replace(s))
}

// StringMap is a Map over string keys that normalizes keys on insert and on
// lookup. Every entry point goes through the normalizer.
type StringMap[V any] struct {
	m    *Map[string, V]
	norm Normalizer
}

// NewStringMap returns a StringMap using norm, or SafeKey when norm is nil.
// Initial maps are inserted as with New.
func NewStringMap[V any](norm Normalizer, initial ...map[string]V) *StringMap[V] {
	if norm == nil {
		norm = SafeKey
	}
	sm := &StringMap[V]{m: NewOrdered[string, V](), norm: norm}
	for _, l := range initial {
		sm.Insert(l)
	}
	return sm
}

// Insert adds a normalized snapshot of layer. When several source keys
// normalize to the same key, the one that sorts last wins.
func (sm *StringMap[V]) Insert(layer map[string]V, opts ...InsertOption) {
	src := make([]string, 0, len(layer))
	for k := range layer {
		src = append(src, k)
	}
	slices.Sort(src)
	snap := make(map[string]V, len(layer))
	for _, k := range src {
		snap[sm.norm(k)] = layer[k]
	}
	sm.m.Insert(snap, opts...)
}

// InsertLayer adds l, normalizing its keys into a snapshot.
func (sm *StringMap[V]) InsertLayer(l Layer[string, V], opts ...InsertOption) {
	keys := l.Keys()
	m := make(map[string]V, len(keys))
	for _, k := range keys {
		if v, ok := l.Lookup(k); ok {
			m[k] = v
		}
	}
	sm.Insert(m, opts...)
}

// Lookup normalizes key before resolving it.
func (sm *StringMap[V]) Lookup(key string) (V, bool) {
	return sm.m.Lookup(sm.norm(key))
}

// Get normalizes key before resolving it.
func (sm *StringMap[V]) Get(key string) (V, error) {
	return sm.m.Get(sm.norm(key))
}

// Contains normalizes key before checking it.
func (sm *StringMap[V]) Contains(key string) bool {
	return sm.m.Contains(sm.norm(key))
}

// Reversed returns the reversed view, keeping key normalization.
func (sm *StringMap[V]) Reversed() *StringMap[V] {
	return &StringMap[V]{m: sm.m.Reversed(), norm: sm.norm}
}

// Keys returns the distinct normalized keys in ascending order.
func (sm *StringMap[V]) Keys() []string { return sm.m.Keys() }

// Items yields every normalized key with its winning value, in Keys order.
func (sm *StringMap[V]) Items() iter.Seq2[string, V] { return sm.m.Items() }

func (sm *StringMap[V]) ToMap() map[string]V { return sm.m.ToMap() }
func (sm *StringMap[V]) Len() int            { return sm.m.Len() }
func (sm *StringMap[V]) Levels() []int       { return sm.m.Levels() }

// Layers returns the normalized snapshots in scan order.
func (sm *StringMap[V]) Layers() []Layer[string, V] { return sm.m.Layers() }
