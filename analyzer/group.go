package analyzer

import "github.com/jonwraymond/brokerdiag/probe"

// GroupFunc maps a probe result to the key of the group it belongs to.
type GroupFunc func(probe.Result) string

// ByComponentID groups results by the component they describe.
func ByComponentID(r probe.Result) string { return r.ComponentID }

// ByParentComponentID groups results by the parent component, such as the
// connection that owns a channel or the cluster that owns a node.
func ByParentComponentID(r probe.Result) string { return r.ParentComponentID }

// ByProbeID groups results by the probe that produced them.
func ByProbeID(r probe.Result) string { return r.ProbeID }

// ByComponentType groups results by component type.
func ByComponentType(r probe.Result) string { return string(r.ComponentType) }

// ByStatus groups results by verdict.
func ByStatus(r probe.Result) string { return r.Status.String() }
