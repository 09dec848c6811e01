package chain

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is matched by every *KeyNotFoundError.
var ErrKeyNotFound = errors.New("chain: key not found")

// KeyNotFoundError reports a key that no layer holds.
type KeyNotFoundError struct {
	Key any
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("chain: key %#v not found in any layer", e.Key)
}

func (e *KeyNotFoundError) Is(target error) bool { return target == ErrKeyNotFound }
