package knowledge

import "errors"

var (
	// ErrMissingProbe is returned when an article names no probe.
	ErrMissingProbe = errors.New("knowledge: article has no probe id")

	// ErrMissingStatus is returned when an article names no status.
	ErrMissingStatus = errors.New("knowledge: article has no status")

	// ErrDuplicateArticle is returned when a document repeats a (probe, status) pair.
	ErrDuplicateArticle = errors.New("knowledge: duplicate article")
)
