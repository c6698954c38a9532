package notify

import "errors"

// ErrObserverPanic indicates an observer panicked while handling a value.
var ErrObserverPanic = errors.New("notify: observer panicked")
