// internal/pipeline/consumption/filter.go
package consumption

import "github.com/dquispe/sismed-analytics/internal/domain"

// Filter narrows transactions to the query's inclusive period window and,
// when product type or strategy codes are given, to products whose catalog row
// matches. Both filters restrict the catalog before the join, so when both are
// present a product must satisfy the two of them (AND semantics). An inverted
// window or a restriction matching no catalog rows yields an empty slice, not
// an error.
func Filter(transactions []domain.TransactionRecord, catalog []domain.CatalogRecord, q domain.Query) []domain.TransactionRecord {
	if q.StartPeriod > q.EndPeriod {
		return nil
	}

	var allowed map[string]struct{}
	if len(q.ProductTypes) > 0 || len(q.Strategies) > 0 {
		allowed = restrictCatalog(catalog, q.ProductTypes, q.Strategies)
	}

	var out []domain.TransactionRecord
	for _, tx := range transactions {
		if tx.Period < q.StartPeriod || tx.Period > q.EndPeriod {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[tx.ProductCode]; !ok {
				continue
			}
		}
		out = append(out, tx)
	}
	return out
}

// restrictCatalog returns the product codes whose catalog row matches every
// filter that was supplied. Code matching is case-sensitive.
func restrictCatalog(catalog []domain.CatalogRecord, productTypes, strategies []string) map[string]struct{} {
	typeSet := toSet(productTypes)
	strategySet := toSet(strategies)

	allowed := make(map[string]struct{})
	for _, row := range catalog {
		if typeSet != nil {
			if _, ok := typeSet[row.ProductType]; !ok {
				continue
			}
		}
		if strategySet != nil {
			if _, ok := strategySet[row.StrategyStatus]; !ok {
				continue
			}
		}
		allowed[row.ProductCode] = struct{}{}
	}
	return allowed
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
