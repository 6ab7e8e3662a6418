// internal/pipeline/consumption/enrich.go
package consumption

import "github.com/dquispe/sismed-analytics/internal/domain"

// DeduplicateCatalog indexes catalog rows by product code. The first occurrence
// of a code wins; later duplicates are dropped.
func DeduplicateCatalog(catalog []domain.CatalogRecord) map[string]domain.CatalogRecord {
	byCode := make(map[string]domain.CatalogRecord, len(catalog))
	for _, row := range catalog {
		if _, ok := byCode[row.ProductCode]; ok {
			continue
		}
		byCode[row.ProductCode] = row
	}
	return byCode
}

// Enrich left-joins each product's metrics with its catalog row and dense
// consumption row. A product with no catalog match keeps its computed numbers;
// only the descriptive fields fall back to the Unknown sentinel. Row order
// follows the matrix's product order.
func Enrich(metrics []domain.ProductMetrics, matrix *ConsumptionMatrix, catalog []domain.CatalogRecord) []domain.ResultRecord {
	byCode := DeduplicateCatalog(catalog)
	periods := matrix.Periods()

	results := make([]domain.ResultRecord, 0, len(metrics))
	for _, m := range metrics {
		results = append(results, domain.ResultRecord{
			ProductCode: m.ProductCode,
			Periods:     periods,
			Consumption: matrix.Row(m.ProductCode),
			Metrics:     m,
			Catalog:     describeProduct(m.ProductCode, byCode),
		})
	}
	return results
}

func describeProduct(code string, byCode map[string]domain.CatalogRecord) domain.CatalogRecord {
	row := byCode[code]
	return domain.CatalogRecord{
		ProductCode:        code,
		Name:               orUnknown(row.Name),
		Presentation:       orUnknown(row.Presentation),
		Concentration:      orUnknown(row.Concentration),
		ProductType:        orUnknown(row.ProductType),
		PetitionType:       orUnknown(row.PetitionType),
		PharmaceuticalForm: orUnknown(row.PharmaceuticalForm),
		StrategyStatus:     orUnknown(row.StrategyStatus),
	}
}

func orUnknown(s string) string {
	if s == "" {
		return domain.UnknownAttribute
	}
	return s
}
