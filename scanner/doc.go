// Package scanner runs wired probe subsets against snapshots.
//
// A Scanner is bound to one snapshot kind and walks that snapshot's
// components, executing every wired probe that evaluates each component's
// kind. The Dispatcher resolves the scanner for an arbitrary snapshot
// through a Resolver (usually a registry.Registry) and wraps the output as
// a Result with a fresh identity and timestamp.
//
// Scanning is synchronous: every probe result, and every observer
// notification for it, has been produced when Scan returns.
package scanner
