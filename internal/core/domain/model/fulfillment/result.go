// Package fulfillment defines the outcome records returned by the downstream
// fulfillment collaborator and their status-partitioned cohorts.
package fulfillment

// Status tags one fulfillment outcome. The set is open on the wire; the
// partitioner only recognizes StatusSuccess and StatusFailed.
type Status string

const (
	// StatusSuccess marks an order that was placed downstream.
	StatusSuccess Status = "success"

	// StatusFailed marks an order the downstream service could not place.
	StatusFailed Status = "failed"
)

// Result is one outcome record per merged order, produced by the fulfillment
// collaborator's response. Results are partitioned immediately and never
// retried automatically by this service.
type Result struct {
	OrderID     int64  `json:"orderId"`
	ProductName string `json:"sellerProductName,omitempty"`
	Status      Status `json:"status"`
	Message     string `json:"message,omitempty"`
}

// Cohorts holds the status-partitioned subsets of a fulfillment response.
// Succeeded and Failed are disjoint; records with unrecognized statuses
// belong to neither.
type Cohorts struct {
	Succeeded []Result
	Failed    []Result
}
