// Package services provides domain services that operate on whole raw order
// sets within one orchestration run. It implements the per-run passes that
// don't naturally belong to a single record.
//
// The package includes:
//   - MergeStrategy: two named strategies consolidating raw orders into
//     merged shipments (receiver-based and product+recipient-based)
//   - DuplicateDetector: observability-only scan for repeated order ids
//   - ResultPartitioner: splits fulfillment results into success/failure
//     cohorts
//
// Duplicate detection and merging are independent passes over the same input;
// neither influences the other's output.
package services
