// internal/pipeline/consumption/calculator.go
package consumption

import (
	"math"

	"github.com/dquispe/sismed-analytics/internal/domain"
)

// Calculator derives the per-product metrics from an aggregated consumption
// matrix. It is pure: given the same matrix and stock inputs it always produces
// the same metrics, in the same order.
type Calculator struct {
	realTime bool
}

// NewCalculator creates a metrics calculator. In real-time mode the latest
// stock of a product is the warehouse-summed balance from the stock snapshot;
// otherwise it is the ending stock reported on the product's most recent
// transaction inside the window.
func NewCalculator(realTime bool) *Calculator {
	return &Calculator{realTime: realTime}
}

// stockDatum is a resolved latest-stock value. known is false only when the
// stock source had no row at all for the product.
type stockDatum struct {
	value float64
	known bool
}

// Compute derives metrics for every product in the matrix. transactions must
// be the same filtered set the matrix was aggregated from; snapshot is only
// consulted in real-time mode.
func (c *Calculator) Compute(matrix *ConsumptionMatrix, transactions []domain.TransactionRecord, snapshot []domain.StockSnapshotRecord) ([]domain.ProductMetrics, error) {
	if matrix.Empty() {
		return []domain.ProductMetrics{}, nil
	}

	stocks := c.resolveStocks(matrix, transactions, snapshot)
	periods := matrix.Periods()

	metrics := make([]domain.ProductMetrics, 0, len(matrix.Products()))
	for _, code := range matrix.Products() {
		// 1. CPMA: mean over all observed periods, zero-consumption months
		// included. This is "average per period in range", not "average per
		// active month".
		var total float64
		active := 0
		for _, p := range periods {
			v := matrix.Value(code, p)
			total += v
			if v > 0 {
				active++
			}
		}
		cpma := total / float64(len(periods))

		// 2. Latest stock for the product, per the selected mode.
		stock := stocks[code]

		if math.IsNaN(cpma) || math.IsInf(cpma, 0) {
			return nil, &domain.ComputationError{ProductCode: code, Reason: "average consumption is not representable"}
		}
		if math.IsNaN(stock.value) || math.IsInf(stock.value, 0) {
			return nil, &domain.ComputationError{ProductCode: code, Reason: "stock level is not representable"}
		}

		// 3. Stock-to-consumption ratio. Division by zero and non-finite
		// results collapse to 0 rather than leaking into the output.
		ratio := stockRatio(stock.value, cpma)

		// 4. Classification, strictly in precedence order.
		situation := domain.ClassifySituation(cpma, stock.value, ratio, stock.known)

		metrics = append(metrics, domain.ProductMetrics{
			ProductCode:  code,
			CPMA:         cpma,
			ActiveMonths: active,
			LatestStock:  stock.value,
			Niveles:      ratio,
			Situation:    situation,
		})
	}
	return metrics, nil
}

// resolveStocks builds the latest-stock lookup for every product in the matrix.
func (c *Calculator) resolveStocks(matrix *ConsumptionMatrix, transactions []domain.TransactionRecord, snapshot []domain.StockSnapshotRecord) map[string]stockDatum {
	if c.realTime {
		return snapshotStocks(matrix, snapshot)
	}
	return transactionStocks(transactions)
}

// transactionStocks picks, per product, the ending stock of the row with the
// highest period. When several rows share the maximum period the largest
// ending stock wins, so the result does not depend on source row order.
func transactionStocks(transactions []domain.TransactionRecord) map[string]stockDatum {
	type latest struct {
		period int
		stock  float64
	}
	best := make(map[string]latest)
	for _, tx := range transactions {
		cur, ok := best[tx.ProductCode]
		if !ok || tx.Period > cur.period || (tx.Period == cur.period && tx.EndingStock > cur.stock) {
			best[tx.ProductCode] = latest{period: tx.Period, stock: tx.EndingStock}
		}
	}
	out := make(map[string]stockDatum, len(best))
	for code, l := range best {
		out[code] = stockDatum{value: l.stock, known: true}
	}
	return out
}

// snapshotStocks sums balances across warehouses, ignoring the period
// dimension. Products absent from the snapshot stay unknown.
func snapshotStocks(matrix *ConsumptionMatrix, snapshot []domain.StockSnapshotRecord) map[string]stockDatum {
	sums := make(map[string]float64)
	seen := make(map[string]struct{})
	for _, row := range snapshot {
		sums[row.ProductCode] += row.StockBalance
		seen[row.ProductCode] = struct{}{}
	}
	out := make(map[string]stockDatum, len(matrix.Products()))
	for _, code := range matrix.Products() {
		_, known := seen[code]
		out[code] = stockDatum{value: sums[code], known: known}
	}
	return out
}

// stockRatio is latest stock over CPMA with the zero/overflow policy applied.
func stockRatio(stock, cpma float64) float64 {
	if cpma == 0 {
		return 0
	}
	r := stock / cpma
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0
	}
	return r
}
