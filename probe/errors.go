package probe

import "errors"

// ErrUnknownStatus indicates a status string does not name one of the five statuses.
var ErrUnknownStatus = errors.New("probe: unknown status")
