// Package order provides the domain model for marketplace order consolidation.
// It defines the raw order records received from the upstream order source and
// the merge-key derivation used to decide which records represent the same
// logical shipment.
//
// The package includes:
//   - RawOrder, LineItem, Recipient, Orderer: externally-owned order records,
//     read-only to this service and never persisted by it
//   - MergeKey: the composite value grouping raw orders into one shipment,
//     derivable by two strategies (receiver-based and product+recipient-based)
//
// Key business rules:
//   - Order identifier plus shipment-box identifier are stable per
//     source-side shipment
//   - Recipient identity fields are used verbatim as merge-key components;
//     the key separator is a control character that cannot appear in
//     legitimate field values
//   - An order with no line items cannot produce a product-code key and
//     falls back to a key unique to that order
package order
