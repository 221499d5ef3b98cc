package history

import "errors"

var (
	// ErrInvalidEntry indicates the entry is missing required fields.
	ErrInvalidEntry = errors.New("invalid history entry")
)
