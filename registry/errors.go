package registry

import "errors"

// Construction errors.
var (
	// ErrNilKnowledgeBase is returned when a registry is built without a knowledge base.
	ErrNilKnowledgeBase = errors.New("registry: knowledge base is nil")

	// ErrInitFailed is returned by NewDefault when bulk registration fails.
	ErrInitFailed = errors.New("registry: failed to register builtin probes and scanners")
)

// Registration errors. These are logged; the registration methods report
// failure as false.
var (
	// ErrUnsupportedCapability indicates a builder whose capability has no
	// matching constructor.
	ErrUnsupportedCapability = errors.New("registry: unsupported builder capability")

	// ErrNilInstance indicates a builder that produced nothing.
	ErrNilInstance = errors.New("registry: builder produced a nil instance")

	// ErrDuplicate indicates a key that is already registered.
	ErrDuplicate = errors.New("registry: already registered")

	// ErrMissingKey indicates a probe without an ID or a scanner without a kind.
	ErrMissingKey = errors.New("registry: missing registration key")
)
