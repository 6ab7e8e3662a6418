// internal/pipeline/consumption/aggregate.go
package consumption

import "github.com/dquispe/sismed-analytics/internal/domain"

// Aggregate groups the filtered transactions by (product, period), sums the
// total-consumption measure per group, and materializes the result as a dense
// matrix over products x observed periods. An empty input produces an empty
// matrix with no products and no periods.
func Aggregate(filtered []domain.TransactionRecord) *ConsumptionMatrix {
	values := make(map[string]map[int]float64)
	periods := make(map[int]struct{})

	for _, tx := range filtered {
		row, ok := values[tx.ProductCode]
		if !ok {
			row = make(map[int]float64)
			values[tx.ProductCode] = row
		}
		row[tx.Period] += tx.TotalConsumption()
		periods[tx.Period] = struct{}{}
	}

	return newMatrix(values, periods)
}
