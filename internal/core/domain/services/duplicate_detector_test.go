package services_test

import (
	"testing"
	"time"

	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/kernel"
	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/model/order"
	"github.com/daechan-jo/auto-store-services-order/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRunContext(t *testing.T) kernel.RunContext {
	t.Helper()
	rc, err := kernel.NewRunContext("ORDER", time.Now())
	require.NoError(t, err)
	return rc
}

func TestDuplicateDetector_Detect(t *testing.T) {
	detector := services.NewDuplicateDetector(discardLogger())
	ctx := t.Context()
	rc := testRunContext(t)

	t.Run("returns all records sharing a repeated order id", func(t *testing.T) {
		input := []order.RawOrder{
			{OrderID: 100, ShipmentBoxID: 1},
			{OrderID: 200, ShipmentBoxID: 2},
			{OrderID: 100, ShipmentBoxID: 3},
		}

		duplicates := detector.Detect(ctx, rc, input)

		require.Len(t, duplicates, 2)
		assert.Equal(t, int64(100), duplicates[0].OrderID)
		assert.Equal(t, int64(100), duplicates[1].OrderID)
	})

	t.Run("returns nothing when all ids are distinct", func(t *testing.T) {
		input := []order.RawOrder{
			{OrderID: 100},
			{OrderID: 200},
			{OrderID: 300},
		}

		assert.Empty(t, detector.Detect(ctx, rc, input))
	})

	t.Run("detection count is invariant to input order", func(t *testing.T) {
		forward := []order.RawOrder{
			{OrderID: 100}, {OrderID: 200}, {OrderID: 100}, {OrderID: 300}, {OrderID: 200},
		}
		reversed := []order.RawOrder{
			{OrderID: 200}, {OrderID: 300}, {OrderID: 100}, {OrderID: 200}, {OrderID: 100},
		}

		assert.Len(t, detector.Detect(ctx, rc, forward), 4)
		assert.Len(t, detector.Detect(ctx, rc, reversed), 4)
	})

	t.Run("does not mutate its input", func(t *testing.T) {
		input := []order.RawOrder{{OrderID: 100}, {OrderID: 100}}

		_ = detector.Detect(ctx, rc, input)

		assert.Equal(t, []order.RawOrder{{OrderID: 100}, {OrderID: 100}}, input)
	})

	t.Run("empty input yields no duplicates", func(t *testing.T) {
		assert.Empty(t, detector.Detect(ctx, rc, nil))
	})
}
