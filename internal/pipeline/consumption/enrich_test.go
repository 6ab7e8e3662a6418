package consumption

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dquispe/sismed-analytics/internal/domain"
)

func TestDeduplicateCatalogFirstWins(t *testing.T) {
	catalog := []domain.CatalogRecord{
		{ProductCode: "P1", Name: "FIRST"},
		{ProductCode: "P1", Name: "SECOND"},
		{ProductCode: "P2", Name: "OTHER"},
	}

	byCode := DeduplicateCatalog(catalog)
	require.Len(t, byCode, 2)
	assert.Equal(t, "FIRST", byCode["P1"].Name)
}

func TestEnrichJoinsCatalogAttributes(t *testing.T) {
	transactions := []domain.TransactionRecord{
		{ProductCode: "P1", Period: 202401, SalesQty: 10, EndingStock: 20},
	}
	catalog := []domain.CatalogRecord{
		{
			ProductCode:        "P1",
			Name:               "AMOXICILINA",
			Presentation:       "TAB",
			Concentration:      "500 mg",
			ProductType:        "M",
			PetitionType:       "P",
			PharmaceuticalForm: "TABLETA",
			StrategyStatus:     "E",
		},
	}

	matrix := Aggregate(transactions)
	metrics, err := NewCalculator(false).Compute(matrix, transactions, nil)
	require.NoError(t, err)

	results := Enrich(metrics, matrix, catalog)
	require.Len(t, results, 1)
	assert.Equal(t, "AMOXICILINA", results[0].Catalog.Name)
	assert.Equal(t, "TABLETA", results[0].Catalog.PharmaceuticalForm)
	assert.Equal(t, metrics[0], results[0].Metrics)
}

func TestEnrichProductMissingFromCatalog(t *testing.T) {
	// Left join: the row survives, descriptive fields get the sentinel,
	// numeric fields stay as computed.
	transactions := []domain.TransactionRecord{
		{ProductCode: "PX", Period: 202401, SalesQty: 10, EndingStock: 20},
	}

	matrix := Aggregate(transactions)
	metrics, err := NewCalculator(false).Compute(matrix, transactions, nil)
	require.NoError(t, err)

	results := Enrich(metrics, matrix, nil)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, domain.UnknownAttribute, r.Catalog.Name)
	assert.Equal(t, domain.UnknownAttribute, r.Catalog.ProductType)
	assert.Equal(t, 10.0, r.Metrics.CPMA)
	assert.Equal(t, 20.0, r.Metrics.LatestStock)
}

func TestEnrichEmptySourceFieldsGetSentinel(t *testing.T) {
	transactions := []domain.TransactionRecord{
		{ProductCode: "P1", Period: 202401, SalesQty: 1},
	}
	catalog := []domain.CatalogRecord{
		{ProductCode: "P1", Name: "KNOWN", Concentration: ""},
	}

	matrix := Aggregate(transactions)
	metrics, err := NewCalculator(false).Compute(matrix, transactions, nil)
	require.NoError(t, err)

	results := Enrich(metrics, matrix, catalog)
	require.Len(t, results, 1)
	assert.Equal(t, "KNOWN", results[0].Catalog.Name)
	assert.Equal(t, domain.UnknownAttribute, results[0].Catalog.Concentration)
}

func TestEnrichCarriesDenseConsumptionRow(t *testing.T) {
	transactions := []domain.TransactionRecord{
		{ProductCode: "P1", Period: 202401, SalesQty: 5},
		{ProductCode: "P2", Period: 202402, SalesQty: 5},
	}

	matrix := Aggregate(transactions)
	metrics, err := NewCalculator(false).Compute(matrix, transactions, nil)
	require.NoError(t, err)

	results := Enrich(metrics, matrix, nil)
	require.Len(t, results, 2)
	for _, r := range results {
		require.Len(t, r.Consumption, 2)
		assert.Equal(t, []int{202401, 202402}, r.Periods)
	}
}
