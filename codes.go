// codes.go - builtin kind hierarchy.
//
// Tree:
//
//	failure
//	├── not_found
//	├── invalid
//	├── conflict
//	└── unavailable
//	    └── timeout
//	internal
//	defect
//	interrupt
//
// Projects extend the tree with NewKind; no central registry is involved.
package plenary

var (
	KindFailure     = NewKind("failure", nil)
	KindNotFound    = NewKind("not_found", KindFailure)
	KindInvalid     = NewKind("invalid", KindFailure)
	KindConflict    = NewKind("conflict", KindFailure)
	KindUnavailable = NewKind("unavailable", KindFailure)
	KindTimeout     = NewKind("timeout", KindUnavailable)

	KindInternal  = NewKind("internal", nil)
	KindDefect    = NewKind("defect", nil)
	KindInterrupt = NewKind("interrupt", nil)
)

var allBuiltinKinds = []*Kind{
	KindFailure,
	KindNotFound,
	KindInvalid,
	KindConflict,
	KindUnavailable,
	KindTimeout,
	KindInternal,
	KindDefect,
	KindInterrupt,
}

// BuiltinKinds returns a copy of the builtin kinds in a stable order.
func BuiltinKinds() []*Kind {
	out := make([]*Kind, len(allBuiltinKinds))
	copy(out, allBuiltinKinds)
	return out
}

// IsBuiltin reports whether k is one of the builtin kinds.
func (k *Kind) IsBuiltin() bool {
	for _, b := range allBuiltinKinds {
		if b == k {
			return true
		}
	}
	return false
}
