// Package analyzer rolls scan results into grouped percentage summaries.
//
// Analyze groups the probe results of one scanner.Result with a caller
// supplied GroupFunc and reports, per group, how many results landed in each
// of the Healthy, Unhealthy, Warning and Inconclusive buckets and what share
// of the group that is. NA results count toward the group total but into no
// bucket.
//
// Every call broadcasts a Report to the registered observers before the
// summaries are returned. Observer failures are logged and never change the
// returned summaries.
package analyzer
