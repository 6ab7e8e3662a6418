// internal/pipeline/consumption/matrix.go
package consumption

import "sort"

// ConsumptionMatrix is the dense product x period matrix of summed total
// consumption. Every product carries a value for every observed period;
// combinations absent from the source are 0, not missing. Products and periods
// are kept sorted so downstream output is deterministic.
type ConsumptionMatrix struct {
	products []string
	periods  []int
	values   map[string]map[int]float64
}

// Products returns the product codes in ascending order.
func (m *ConsumptionMatrix) Products() []string { return m.products }

// Periods returns the observed periods in ascending order.
func (m *ConsumptionMatrix) Periods() []int { return m.periods }

// Value returns the summed consumption for (product, period). Missing
// combinations read as 0, which for in-matrix keys is the densified default.
func (m *ConsumptionMatrix) Value(product string, period int) float64 {
	return m.values[product][period]
}

// Row returns the product's dense consumption row keyed by period.
func (m *ConsumptionMatrix) Row(product string) map[int]float64 {
	row := make(map[int]float64, len(m.periods))
	for _, p := range m.periods {
		row[p] = m.values[product][p]
	}
	return row
}

// Empty reports whether the matrix has no products and no periods.
func (m *ConsumptionMatrix) Empty() bool {
	return len(m.products) == 0
}

func newMatrix(values map[string]map[int]float64, periodSet map[int]struct{}) *ConsumptionMatrix {
	m := &ConsumptionMatrix{
		products: make([]string, 0, len(values)),
		periods:  make([]int, 0, len(periodSet)),
		values:   values,
	}
	for code := range values {
		m.products = append(m.products, code)
	}
	sort.Strings(m.products)
	for p := range periodSet {
		m.periods = append(m.periods, p)
	}
	sort.Ints(m.periods)

	// Densify: every product gets an explicit entry for every observed period.
	for _, code := range m.products {
		row := m.values[code]
		for _, p := range m.periods {
			if _, ok := row[p]; !ok {
				row[p] = 0
			}
		}
	}
	return m
}
