// Package faults classifies run-level failures.
//
// Row-level problems never leave the pipeline; everything that does escalate
// to the orchestrator carries one of the markers defined here so the CLI can
// tell a bad configuration apart from a corrupt archive or a failed write.
package faults
