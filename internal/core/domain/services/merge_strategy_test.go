package services_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/order"
	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func totalItems(orders []order.RawOrder) int {
	total := 0
	for _, o := range orders {
		total += o.ItemCount()
	}
	return total
}

func kimRecipient() order.Recipient {
	return order.Recipient{Name: "Kim", Addr1: "Addr1", Addr2: "Addr2", PostCode: "12345"}
}

// threeOrderFixture is the canonical merge scenario: two raw orders share
// order id 100 and an identical recipient (with 1 and 2 line items), one
// distinct order id 200 has a single line item.
func threeOrderFixture() []order.RawOrder {
	kim := kimRecipient()
	return []order.RawOrder{
		{
			OrderID: 100, ShipmentBoxID: 1, Receiver: kim,
			Orderer: order.Orderer{MemberID: "m-1", MemberName: "Kim"},
			Items:   []order.LineItem{{ProductName: "A100 Widget", Quantity: 1}},
		},
		{
			OrderID: 100, ShipmentBoxID: 2, Receiver: kim,
			Orderer: order.Orderer{MemberID: "m-1", MemberName: "Kim"},
			Items: []order.LineItem{
				{ProductName: "A100 Widget Large", Quantity: 1},
				{ProductName: "A100 Widget Small", Quantity: 2},
			},
		},
		{
			OrderID: 200, ShipmentBoxID: 3,
			Receiver: order.Recipient{Name: "Lee", Addr1: "Other1", Addr2: "Other2", PostCode: "54321"},
			Orderer:  order.Orderer{MemberID: "m-2", MemberName: "Lee"},
			Items:    []order.LineItem{{ProductName: "B200 Gadget", Quantity: 1}},
		},
	}
}

func allStrategies(t *testing.T) []services.MergeStrategy {
	t.Helper()
	receiver, err := services.NewMergeStrategy(services.ReceiverStrategyName, discardLogger())
	require.NoError(t, err)
	product, err := services.NewMergeStrategy(services.ProductRecipientStrategyName, discardLogger())
	require.NoError(t, err)
	return []services.MergeStrategy{receiver, product}
}

func TestNewMergeStrategy(t *testing.T) {
	t.Run("resolves registered strategies by name", func(t *testing.T) {
		for _, name := range []string{services.ReceiverStrategyName, services.ProductRecipientStrategyName} {
			strategy, err := services.NewMergeStrategy(name, discardLogger())

			require.NoError(t, err)
			assert.Equal(t, name, strategy.Name())
		}
	})

	t.Run("rejects unknown strategy name", func(t *testing.T) {
		_, err := services.NewMergeStrategy("round-robin", discardLogger())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "mergeStrategy")
	})
}

func TestReceiverMergeStrategy_Merge(t *testing.T) {
	strategy := services.NewReceiverMergeStrategy()
	ctx := t.Context()

	t.Run("consolidates same order id and recipient into one shipment", func(t *testing.T) {
		merged := strategy.Merge(ctx, threeOrderFixture())

		require.Len(t, merged, 2)

		assert.Equal(t, int64(100), merged[0].OrderID)
		assert.Equal(t, 3, merged[0].ItemCount())
		assert.True(t, merged[0].MultiItem)

		assert.Equal(t, int64(200), merged[1].OrderID)
		assert.Equal(t, 1, merged[1].ItemCount())
		assert.False(t, merged[1].MultiItem)
	})

	t.Run("retains the first-seen record's non-item fields", func(t *testing.T) {
		merged := strategy.Merge(ctx, threeOrderFixture())

		require.Len(t, merged, 2)
		assert.Equal(t, int64(1), merged[0].ShipmentBoxID)
	})

	t.Run("same order id with different recipient stays separate", func(t *testing.T) {
		kim := kimRecipient()
		input := []order.RawOrder{
			{OrderID: 100, Receiver: kim, Items: []order.LineItem{{ProductName: "A", Quantity: 1}}},
			{
				OrderID:  100,
				Receiver: order.Recipient{Name: "Kim", Addr1: "Elsewhere", Addr2: "Addr2", PostCode: "12345"},
				Items:    []order.LineItem{{ProductName: "B", Quantity: 1}},
			},
		}

		merged := strategy.Merge(ctx, input)

		assert.Len(t, merged, 2)
	})
}

func TestProductRecipientMergeStrategy_Merge(t *testing.T) {
	strategy := services.NewProductRecipientMergeStrategy(discardLogger())
	ctx := t.Context()

	t.Run("consolidates by product code and member identity", func(t *testing.T) {
		merged := strategy.Merge(ctx, threeOrderFixture())

		require.Len(t, merged, 2)
		assert.Equal(t, 3, merged[0].ItemCount())
		assert.True(t, merged[0].MultiItem)
		assert.Equal(t, 1, merged[1].ItemCount())
		assert.False(t, merged[1].MultiItem)
	})

	t.Run("groups across different order ids when product and recipient match", func(t *testing.T) {
		kim := kimRecipient()
		member := order.Orderer{MemberID: "m-1", MemberName: "Kim"}
		input := []order.RawOrder{
			{OrderID: 100, Orderer: member, Receiver: kim,
				Items: []order.LineItem{{ProductName: "A100 Red", Quantity: 1}}},
			{OrderID: 300, Orderer: member, Receiver: kim,
				Items: []order.LineItem{{ProductName: "A100 Blue", Quantity: 1}}},
		}

		merged := strategy.Merge(ctx, input)

		require.Len(t, merged, 1)
		assert.Equal(t, int64(100), merged[0].OrderID)
		assert.Equal(t, 2, merged[0].ItemCount())
		assert.True(t, merged[0].MultiItem)
	})

	t.Run("order without line items passes through unmerged", func(t *testing.T) {
		kim := kimRecipient()
		member := order.Orderer{MemberID: "m-1", MemberName: "Kim"}
		input := []order.RawOrder{
			{OrderID: 100, ShipmentBoxID: 1, Orderer: member, Receiver: kim,
				Items: []order.LineItem{{ProductName: "A100 Widget", Quantity: 1}}},
			{OrderID: 400, ShipmentBoxID: 4, Orderer: member, Receiver: kim},
			{OrderID: 500, ShipmentBoxID: 5, Orderer: member, Receiver: kim},
		}

		merged := strategy.Merge(ctx, input)

		// The two itemless orders must not group with anything, not even
		// with each other.
		require.Len(t, merged, 3)
		assert.Equal(t, 0, merged[1].ItemCount())
		assert.False(t, merged[1].MultiItem)
	})
}

func TestMergeStrategies_Properties(t *testing.T) {
	ctx := t.Context()

	for _, strategy := range allStrategies(t) {
		t.Run(strategy.Name(), func(t *testing.T) {
			t.Run("empty input yields empty output", func(t *testing.T) {
				assert.Empty(t, strategy.Merge(ctx, nil))
				assert.Empty(t, strategy.Merge(ctx, []order.RawOrder{}))
			})

			t.Run("total line-item count is preserved", func(t *testing.T) {
				input := threeOrderFixture()

				merged := strategy.Merge(ctx, input)

				assert.Equal(t, totalItems(input), totalItems(merged))
			})

			t.Run("merge is deterministic for stable input order", func(t *testing.T) {
				input := threeOrderFixture()

				first := strategy.Merge(ctx, input)
				second := strategy.Merge(ctx, input)

				assert.Equal(t, first, second)
			})

			t.Run("input records are not mutated", func(t *testing.T) {
				input := threeOrderFixture()

				_ = strategy.Merge(ctx, input)

				assert.Equal(t, threeOrderFixture(), input)
			})

			t.Run("multi-item flag mirrors accumulated item count", func(t *testing.T) {
				merged := strategy.Merge(ctx, threeOrderFixture())

				for _, m := range merged {
					assert.Equal(t, m.ItemCount() > 1, m.MultiItem)
				}
			})
		})
	}
}
