// fields.go - ordered structured metadata for kind errors and capture scopes.
//
// Design:
//   - Internal representation: append-only []Field (deterministic order).
//   - Builders are non-mutating: return NEW slices (no aliasing).
//   - Public view for callers: copy-on-read map[string]any.
package plenary

// Field represents a single key-value pair attached to an error or a scope.
// Keys SHOULD be snake_case for consistency, but nothing enforces it.
type Field struct {
	Key string
	Val any
}

// fields is the internal immutable representation of metadata.
// Treat it as append-only; never modify elements in place once published.
type fields []Field

var emptyFields = make(fields, 0)

// cloneAppend returns a NEW slice with dst's contents followed by add.
// It always allocates a fresh backing array to avoid aliasing via append.
func cloneAppend(dst fields, add ...Field) fields {
	n, m := len(dst), len(add)
	if n+m == 0 {
		return emptyFields
	}
	out := make(fields, n+m)
	copy(out, dst)
	copy(out[n:], add)
	return out
}

// fieldsFromKV parses a variadic list of key-value arguments into fields.
//
// Rules:
//   - Pairs are read left-to-right as (key, value).
//   - A non-string key drops the ENTIRE pair so later pairs stay aligned.
//   - A trailing key with no value becomes (key, nil).
func fieldsFromKV(kv ...any) fields {
	if len(kv) == 0 {
		return emptyFields
	}
	out := make(fields, 0, len(kv)/2+1)
	for i := 0; i < len(kv); {
		k, ok := kv[i].(string)
		if !ok {
			i += 2
			continue
		}
		var v any
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		i += 2
		out = append(out, Field{Key: k, Val: v})
	}
	if len(out) == 0 {
		return emptyFields
	}
	return out
}

// toMap creates a NEW map from fields (copy-on-read).
// Later duplicate keys overwrite earlier ones (last-write-wins).
func (fs fields) toMap() map[string]any {
	if len(fs) == 0 {
		return nil
	}
	m := make(map[string]any, len(fs))
	for _, f := range fs {
		m[f.Key] = f.Val
	}
	return m
}
