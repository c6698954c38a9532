package scanner

import "errors"

var (
	// ErrNilResolver is returned when a Dispatcher is built without a resolver.
	ErrNilResolver = errors.New("scanner: resolver is nil")
)
