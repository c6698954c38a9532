// Package observe provides observability primitives for diagnostic scans.
//
// It is a pure instrumentation library: no scanning and no I/O beyond
// exporter setup. Consumers wrap scanner.Dispatcher and analyzer.Analyzer
// with a Middleware and Metrics built from an Observer.
package observe
