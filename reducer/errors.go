package reducer

import "errors"

// Composition errors returned by Combine.
var (
	ErrDuplicateSliceKey = errors.New("duplicate slice key")
	ErrEmptySliceKey     = errors.New("empty slice key")
	ErrNilReducer        = errors.New("nil slice reducer")
)
