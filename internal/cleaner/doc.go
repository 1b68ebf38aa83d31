// Package cleaner provides the ordered, configurable rules that normalize or
// reject rows between fixing and export.
//
// A cleaner returns false to reject a row; the pipeline then stops the chain
// and records the cleaner id in the skip log. Cleaners may declare
// prerequisites, which ValidateChain checks before any row is processed.
//
// The built-in cleaners live in two static registries, one per row kind.
// Registering two cleaners under the same id panics at package initialization.
package cleaner
