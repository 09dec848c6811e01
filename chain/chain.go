package chain

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

// level holds the layers of one order. front keeps prepended layers oldest
// first (they are scanned newest first) and back keeps appended layers in
// scan order, so both insert kinds are amortized O(1).
type level[K comparable, V any] struct {
	front []Layer[K, V]
	back  []Layer[K, V]
}

func (lv *level[K, V]) each(reverse bool, yield func(Layer[K, V]) bool) bool {
	if !reverse {
		for i := len(lv.front) - 1; i >= 0; i-- {
			if !yield(lv.front[i]) {
				return false
			}
		}
		for _, l := range lv.back {
			if !yield(l) {
				return false
			}
		}
		return true
	}
	for i := len(lv.back) - 1; i >= 0; i-- {
		if !yield(lv.back[i]) {
			return false
		}
	}
	for _, l := range lv.front {
		if !yield(l) {
			return false
		}
	}
	return true
}

type store[K comparable, V any] struct {
	levels  map[int]*level[K, V]
	compare func(a, b K) int
}

// Map is a layered, read-only key/value view. The zero value is not usable;
// create one with New or NewOrdered.
type Map[K comparable, V any] struct {
	s        *store[K, V]
	reversed bool
}

// New returns a chain holding the initial maps at order 0. Each one is
// prepended, so a later initial map takes precedence over an earlier one.
//
// Keys and Items are sorted by the %#v rendering of keys; use NewOrdered or
// SortKeysBy for a natural order.
func New[K comparable, V any](initial ...map[K]V) *Map[K, V] {
	m := &Map[K, V]{s: &store[K, V]{
		levels:  make(map[int]*level[K, V]),
		compare: compareFormatted[K],
	}}
	for _, l := range initial {
		m.Insert(l)
	}
	return m
}

// NewOrdered is New for ordered keys; Keys and Items use cmp.Compare.
func NewOrdered[K cmp.Ordered, V any](initial ...map[K]V) *Map[K, V] {
	return New(initial...).SortKeysBy(cmp.Compare[K])
}

func compareFormatted[K comparable](a, b K) int {
	return strings.Compare(fmt.Sprintf("%#v", a), fmt.Sprintf("%#v", b))
}

// SortKeysBy sets the order in which Keys and Items report keys. It affects
// every view of the chain and returns m.
func (m *Map[K, V]) SortKeysBy(compare func(a, b K) int) *Map[K, V] {
	if compare != nil {
		m.s.compare = compare
	}
	return m
}

type insertConfig struct {
	order  int
	append bool
}

// InsertOption configures Insert and InsertLayer.
type InsertOption func(*insertConfig)

// AtOrder places the layer at priority order n (default 0).
func AtOrder(n int) InsertOption {
	return func(c *insertConfig) { c.order = n }
}

// Append makes the layer the last one scanned at its order instead of the
// first.
func Append() InsertOption {
	return func(c *insertConfig) { c.append = true }
}

// Insert adds layer as a new layer. See InsertLayer.
func (m *Map[K, V]) Insert(layer map[K]V, opts ...InsertOption) {
	m.InsertLayer(FromMap(layer), opts...)
}

// InsertLayer adds l at the configured order. By default l is scanned
// before the layers already at that order; with Append it is scanned after
// them. Insert semantics refer to the forward scan order regardless of the
// view they are called on.
func (m *Map[K, V]) InsertLayer(l Layer[K, V], opts ...InsertOption) {
	var cfg insertConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	lv, ok := m.s.levels[cfg.order]
	if !ok {
		lv = &level[K, V]{}
		m.s.levels[cfg.order] = lv
	}
	if cfg.append {
		lv.back = append(lv.back, l)
	} else {
		lv.front = append(lv.front, l)
	}
}

// Reversed returns a view of the same layers that scans orders descending
// and layers within an order in reverse. Inserts through either view are
// visible in both.
func (m *Map[K, V]) Reversed() *Map[K, V] {
	return &Map[K, V]{s: m.s, reversed: !m.reversed}
}

// Levels returns the populated orders, ascending.
func (m *Map[K, V]) Levels() []int {
	return slices.Sorted(maps.Keys(m.s.levels))
}

// layers yields every layer in scan order. Orders are sorted once per call.
func (m *Map[K, V]) layers() iter.Seq[Layer[K, V]] {
	return func(yield func(Layer[K, V]) bool) {
		orders := m.Levels()
		if m.reversed {
			slices.Reverse(orders)
		}
		for _, o := range orders {
			if !m.s.levels[o].each(m.reversed, yield) {
				return
			}
		}
	}
}

// Layers returns every layer in scan order.
func (m *Map[K, V]) Layers() []Layer[K, V] {
	return slices.Collect(m.layers())
}

// Lookup returns the value from the first layer holding key.
func (m *Map[K, V]) Lookup(key K) (V, bool) {
	for l := range m.layers() {
		if v, ok := l.Lookup(key); ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// Get is Lookup with an error: a missing key yields *KeyNotFoundError.
func (m *Map[K, V]) Get(key K) (V, error) {
	if v, ok := m.Lookup(key); ok {
		return v, nil
	}
	var zero V
	return zero, &KeyNotFoundError{Key: key}
}

// Contains reports whether any layer holds key. It never panics, even for an
// interface key whose dynamic type is not hashable.
func (m *Map[K, V]) Contains(key K) (found bool) {
	defer func() {
		if recover() != nil {
			found = false
		}
	}()
	_, found = m.Lookup(key)
	return found
}

func (m *Map[K, V]) keySet() (map[K]struct{}, []K) {
	seen := make(map[K]struct{})
	var keys []K
	for l := range m.layers() {
		for _, k := range l.Keys() {
			if _, dup := seen[k]; !dup {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	return seen, keys
}

// Keys returns the distinct keys of all layers, sorted with the chain's key
// order.
func (m *Map[K, V]) Keys() []K {
	_, keys := m.keySet()
	slices.SortStableFunc(keys, m.s.compare)
	return keys
}

// Len returns the number of distinct keys, not the number of entries across
// layers.
func (m *Map[K, V]) Len() int {
	seen, _ := m.keySet()
	return len(seen)
}

// Items yields every key with its winning value, in Keys order.
func (m *Map[K, V]) Items() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.Keys() {
			v, _ := m.Lookup(k)
			if !yield(k, v) {
				return
			}
		}
	}
}

// ToMap materializes the resolved view into a new map.
func (m *Map[K, V]) ToMap() map[K]V {
	return maps.Collect(m.Items())
}
