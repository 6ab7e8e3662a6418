package consumption

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dquispe/sismed-analytics/internal/domain"
)

func TestAggregateSumsDuplicateKeys(t *testing.T) {
	// Two lines for the same (product, period) must be summed, not overwritten.
	transactions := []domain.TransactionRecord{
		{ProductCode: "P1", Period: 202401, SalesQty: 3, SISQty: 1, IntersanQty: 2},
		{ProductCode: "P1", Period: 202401, SalesQty: 4},
	}

	matrix := Aggregate(transactions)
	assert.Equal(t, 10.0, matrix.Value("P1", 202401))
}

func TestAggregateDensifiesOverObservedPeriods(t *testing.T) {
	transactions := []domain.TransactionRecord{
		{ProductCode: "P1", Period: 202401, SalesQty: 5},
		{ProductCode: "P2", Period: 202402, SalesQty: 7},
	}

	matrix := Aggregate(transactions)
	require.Equal(t, []int{202401, 202402}, matrix.Periods())
	require.Equal(t, []string{"P1", "P2"}, matrix.Products())

	// Missing combinations are 0, not absent.
	assert.Equal(t, 0.0, matrix.Value("P1", 202402))
	assert.Equal(t, 0.0, matrix.Value("P2", 202401))

	for _, code := range matrix.Products() {
		row := matrix.Row(code)
		assert.Len(t, row, len(matrix.Periods()))
	}
}

func TestAggregatePeriodsSortedAscending(t *testing.T) {
	transactions := []domain.TransactionRecord{
		{ProductCode: "P1", Period: 202403, SalesQty: 1},
		{ProductCode: "P1", Period: 202401, SalesQty: 1},
		{ProductCode: "P1", Period: 202402, SalesQty: 1},
	}

	matrix := Aggregate(transactions)
	assert.Equal(t, []int{202401, 202402, 202403}, matrix.Periods())
}

func TestAggregateEmptyInput(t *testing.T) {
	matrix := Aggregate(nil)
	assert.True(t, matrix.Empty())
	assert.Empty(t, matrix.Products())
	assert.Empty(t, matrix.Periods())
}

func TestAggregateUsesTotalConsumption(t *testing.T) {
	// VENTA + SIS + INTERSAN, ending stock plays no part in consumption.
	transactions := []domain.TransactionRecord{
		{ProductCode: "P1", Period: 202401, SalesQty: 1, SISQty: 2, IntersanQty: 3, EndingStock: 99},
	}

	matrix := Aggregate(transactions)
	assert.Equal(t, 6.0, matrix.Value("P1", 202401))
}
