package order

// LineItem is one product line within a raw order as reported by the
// upstream order source.
type LineItem struct {
	VendorItemID int64  `json:"vendorItemId"`
	ProductName  string `json:"sellerProductName"`
	Quantity     int    `json:"shippingCount"`
	ExternalSKU  string `json:"externalVendorSkuCode,omitempty"`
}

// Recipient is the delivery destination identity of a raw order. Its fields
// are free text from the marketplace and are used verbatim (no normalization)
// as merge-key components.
type Recipient struct {
	Name     string `json:"name"`
	Addr1    string `json:"addr1"`
	Addr2    string `json:"addr2"`
	PostCode string `json:"postCode"`
}

// Orderer is the purchasing member's identity. It participates only in the
// product+recipient merge strategy.
type Orderer struct {
	MemberID   string `json:"memberId"`
	MemberName string `json:"name"`
}

// RawOrder is one unit of marketplace order data as received from the
// upstream source. It is read-only to this service: the merger copies it
// rather than mutating the fetched record, and nothing here is persisted.
//
// OrderID together with ShipmentBoxID is stable per source-side shipment;
// ShipmentBoxID groups items that ship together within one order.
type RawOrder struct {
	OrderID       int64      `json:"orderId"`
	ShipmentBoxID int64      `json:"shipmentBoxId"`
	OrderedAt     string     `json:"orderedAt"`
	Orderer       Orderer    `json:"orderer"`
	Receiver      Recipient  `json:"receiver"`
	Items         []LineItem `json:"orderItems"`
	MultiItem     bool       `json:"multiItem"`
}

// ItemCount returns the number of line items on the order.
func (o RawOrder) ItemCount() int {
	return len(o.Items)
}

// CloneWithItems returns a shallow copy of the order with its own fresh copy
// of the line-item slice, so appending to the copy never mutates the source
// record.
func (o RawOrder) CloneWithItems() RawOrder {
	clone := o
	clone.Items = make([]LineItem, len(o.Items))
	copy(clone.Items, o.Items)
	return clone
}
