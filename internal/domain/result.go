package domain

import (
	"bytes"
	"encoding/json"
)

// UnknownAttribute is the sentinel filled into descriptive catalog fields when
// the product has no catalog row, or the source field is empty. Numeric fields
// are never sentineled.
const UnknownAttribute = "Unknown"

// ResultRecord is one fully-assembled output row: the product's per-period
// consumption (dense over the observed periods), its derived metrics, and its
// catalog attributes.
type ResultRecord struct {
	ProductCode string
	Periods     []int // observed periods, ascending; shared across all records
	Consumption map[int]float64
	Metrics     ProductMetrics
	Catalog     CatalogRecord
}

// MarshalJSON emits the record as a flat object with a fixed column order:
// product code, one key per observed month ascending, the metric columns, then
// the catalog attributes.
func (r ResultRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeField(&buf, "codigo_med", r.ProductCode, true)
	for _, p := range r.Periods {
		writeField(&buf, PeriodLabel(p), r.Consumption[p], false)
	}
	writeField(&buf, "cpma", r.Metrics.CPMA, false)
	writeField(&buf, "active_months", r.Metrics.ActiveMonths, false)
	writeField(&buf, "latest_stock", r.Metrics.LatestStock, false)
	writeField(&buf, "niveles", r.Metrics.Niveles, false)
	writeField(&buf, "situacion", r.Metrics.Situation, false)
	writeField(&buf, "name", r.Catalog.Name, false)
	writeField(&buf, "presentation", r.Catalog.Presentation, false)
	writeField(&buf, "concentration", r.Catalog.Concentration, false)
	writeField(&buf, "product_type", r.Catalog.ProductType, false)
	writeField(&buf, "petition_type", r.Catalog.PetitionType, false)
	writeField(&buf, "pharmaceutical_form", r.Catalog.PharmaceuticalForm, false)
	writeField(&buf, "strategy_status", r.Catalog.StrategyStatus, false)

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, key string, value any, first bool) {
	if !first {
		buf.WriteByte(',')
	}
	k, _ := json.Marshal(key)
	buf.Write(k)
	buf.WriteByte(':')
	v, err := json.Marshal(value)
	if err != nil {
		buf.WriteString("null")
		return
	}
	buf.Write(v)
}
