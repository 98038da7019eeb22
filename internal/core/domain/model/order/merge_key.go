package order

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoLineItems is returned when a merge key that depends on line items is
// requested for an order that has none.
var ErrNoLineItems = errors.New("order has no line items")

// MergeKey is the composite value deciding which raw orders represent the
// same logical shipment. Two RawOrders with an identical MergeKey must be
// combined into one merged order.
type MergeKey string

// keySeparator joins key components. ASCII unit separator: a control
// character that cannot appear in legitimate marketplace field values, so
// free-text recipient fields cannot produce accidental key collisions.
const keySeparator = "\x1f"

// joinKey builds a MergeKey from its parts, stripping any stray separator
// occurrences from free-text components rather than trusting them.
func joinKey(parts ...string) MergeKey {
	cleaned := make([]string, len(parts))
	for i, p := range parts {
		cleaned[i] = strings.ReplaceAll(p, keySeparator, "")
	}
	return MergeKey(strings.Join(cleaned, keySeparator))
}

// ReceiverMergeKey derives the receiver-based merge key (order identifier
// plus the full recipient identity). Orders sharing this key are the same
// shipment to the same destination.
func ReceiverMergeKey(o RawOrder) MergeKey {
	return joinKey(
		fmt.Sprintf("%d", o.OrderID),
		o.Receiver.Name,
		o.Receiver.Addr1,
		o.Receiver.Addr2,
		o.Receiver.PostCode,
	)
}

// ProductCode returns the leading whitespace-delimited token of the first
// line item's product name, used as a product-code proxy by the
// product+recipient merge strategy. Returns ErrNoLineItems for an order
// without items.
func (o RawOrder) ProductCode() (string, error) {
	if len(o.Items) == 0 {
		return "", ErrNoLineItems
	}
	fields := strings.Fields(o.Items[0].ProductName)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], nil
}

// ProductRecipientMergeKey derives the product+recipient merge key (product
// code proxy plus member identity plus delivery address). Returns
// ErrNoLineItems when the order has no line items to derive a product code
// from; callers fall back to FallbackMergeKey in that case.
func ProductRecipientMergeKey(o RawOrder) (MergeKey, error) {
	code, err := o.ProductCode()
	if err != nil {
		return "", err
	}
	return joinKey(
		code,
		o.Orderer.MemberID,
		o.Orderer.MemberName,
		o.Receiver.Addr1,
		o.Receiver.Addr2,
		o.Receiver.Name,
	), nil
}

// FallbackMergeKey derives a key unique to the order itself (order id plus
// shipment box id), making the order ungroupable. Used when a strategy
// cannot derive its regular key.
func FallbackMergeKey(o RawOrder) MergeKey {
	return joinKey(
		fmt.Sprintf("%d", o.OrderID),
		fmt.Sprintf("%d", o.ShipmentBoxID),
	)
}
