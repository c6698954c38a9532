// Package registry constructs and holds probe and scanner instances.
//
// Probes and scanners are built from explicit builder tables. A
// ProbeBuilder declares whether its probe needs threshold configuration
// or is stateless, and the registry calls the matching constructor. The
// default tables, DefaultProbes and DefaultScanners, cover every built-in
// probe and scanner; hosts extend the rule set by passing their own
// builders or by registering instances at runtime.
//
// Every registered scanner stays wired to the complete probe list.
// Registering a probe rewires all scanners; each scanner swaps its wiring
// atomically, so a concurrent scan sees either the old or the new set.
//
// A Registry is safe for concurrent use and satisfies scanner.Resolver.
package registry
