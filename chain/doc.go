// Package chain provides Map, a read-only layered view over an ordered stack
// of key/value layers.
//
// Layers are grouped by integer priority ("order"). A lookup scans orders
// ascending, and within one order scans layers in insertion order: a layer
// inserted with the default (prepend) semantics is searched before the layers
// already at its order, one inserted with Append after them. The first layer
// holding the key wins. Reversed returns a view that scans in exactly the
// opposite order.
//
//	m := chain.New(map[string]int{"a": 1, "b": 2})
//	m.Insert(map[string]int{"a": 10, "c": 3})
//	v, _ := m.Get("a") // 10
//	m.Len()            // 3
//
// The chain never mutates its layers and never materializes the merged view on
// insert; every lookup walks the levels lazily. A Map is not safe for
// concurrent mutation: guard Insert externally when sharing one.
package chain
