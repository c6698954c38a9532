// Package engine assembles a complete diagnostics pipeline from one
// configuration: the probe registry, the dispatcher, the analyzer and, when
// the configuration has a telemetry section, an observe.Observer that
// instruments scans and analyses.
//
// Usage:
//
//	cfg, err := config.Load("diagnostics.yaml")
//	eng, err := engine.New(ctx, cfg, knowledge.Default())
//	defer eng.Shutdown(ctx)
//
//	d := eng.Diagnose(ctx, snap, analyzer.ByComponentID)
package engine
