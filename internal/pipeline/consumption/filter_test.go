package consumption

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dquispe/sismed-analytics/internal/domain"
)

func tx(code string, period int, sales float64) domain.TransactionRecord {
	return domain.TransactionRecord{ProductCode: code, Period: period, SalesQty: sales}
}

func catalogRow(code, productType, strategy string) domain.CatalogRecord {
	return domain.CatalogRecord{ProductCode: code, ProductType: productType, StrategyStatus: strategy}
}

func TestFilterPeriodWindow(t *testing.T) {
	transactions := []domain.TransactionRecord{
		tx("P1", 202312, 1),
		tx("P1", 202401, 2),
		tx("P2", 202402, 3),
		tx("P2", 202403, 4),
	}

	got := Filter(transactions, nil, domain.Query{StartPeriod: 202401, EndPeriod: 202402})
	require.Len(t, got, 2)
	assert.Equal(t, 202401, got[0].Period)
	assert.Equal(t, 202402, got[1].Period)
}

func TestFilterBoundsAreInclusive(t *testing.T) {
	transactions := []domain.TransactionRecord{tx("P1", 202401, 1), tx("P1", 202403, 2)}

	got := Filter(transactions, nil, domain.Query{StartPeriod: 202401, EndPeriod: 202403})
	assert.Len(t, got, 2)
}

func TestFilterInvertedWindowIsEmpty(t *testing.T) {
	transactions := []domain.TransactionRecord{tx("P1", 202401, 1)}

	got := Filter(transactions, nil, domain.Query{StartPeriod: 202402, EndPeriod: 202401})
	assert.Empty(t, got)
}

func TestFilterByProductType(t *testing.T) {
	transactions := []domain.TransactionRecord{tx("P1", 202401, 1), tx("P2", 202401, 2)}
	catalog := []domain.CatalogRecord{
		catalogRow("P1", "M", "E"),
		catalogRow("P2", "I", "E"),
	}

	got := Filter(transactions, catalog, domain.Query{
		StartPeriod: 202401, EndPeriod: 202412,
		ProductTypes: []string{"M"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "P1", got[0].ProductCode)
}

func TestFilterTypeAndStrategyAreANDed(t *testing.T) {
	transactions := []domain.TransactionRecord{
		tx("P1", 202401, 1), // type M, strategy E
		tx("P2", 202401, 1), // type M, strategy N
		tx("P3", 202401, 1), // type I, strategy E
	}
	catalog := []domain.CatalogRecord{
		catalogRow("P1", "M", "E"),
		catalogRow("P2", "M", "N"),
		catalogRow("P3", "I", "E"),
	}

	got := Filter(transactions, catalog, domain.Query{
		StartPeriod: 202401, EndPeriod: 202412,
		ProductTypes: []string{"M"},
		Strategies:   []string{"E"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "P1", got[0].ProductCode)
}

func TestFilterCodesAreCaseSensitive(t *testing.T) {
	transactions := []domain.TransactionRecord{tx("P1", 202401, 1)}
	catalog := []domain.CatalogRecord{catalogRow("P1", "M", "E")}

	got := Filter(transactions, catalog, domain.Query{
		StartPeriod: 202401, EndPeriod: 202412,
		ProductTypes: []string{"m"},
	})
	assert.Empty(t, got)
}

func TestFilterEmptyCatalogRestriction(t *testing.T) {
	transactions := []domain.TransactionRecord{tx("P1", 202401, 1)}
	catalog := []domain.CatalogRecord{catalogRow("P1", "M", "E")}

	got := Filter(transactions, catalog, domain.Query{
		StartPeriod: 202401, EndPeriod: 202412,
		ProductTypes: []string{"NO_SUCH_TYPE"},
	})
	assert.Empty(t, got)
}

func TestFilterProductMissingFromCatalog(t *testing.T) {
	// A transaction product with no catalog row cannot satisfy a catalog
	// restriction, but passes through when no restriction is given.
	transactions := []domain.TransactionRecord{tx("PX", 202401, 1)}
	catalog := []domain.CatalogRecord{catalogRow("P1", "M", "E")}

	restricted := Filter(transactions, catalog, domain.Query{
		StartPeriod: 202401, EndPeriod: 202412, ProductTypes: []string{"M"},
	})
	assert.Empty(t, restricted)

	open := Filter(transactions, catalog, domain.Query{StartPeriod: 202401, EndPeriod: 202412})
	assert.Len(t, open, 1)
}
