// internal/repository/record_source.go
package repository

import (
	"context"

	"github.com/dquispe/sismed-analytics/internal/domain"
)

// RecordSource supplies the three source tables the analytics pipeline works
// from. Implementations return fully-loaded slices: a missing table surfaces
// as *domain.NotFoundError and a table missing a required column as
// *domain.SchemaError. An existing but empty table is a valid empty slice.
type RecordSource interface {
	Transactions(ctx context.Context) ([]domain.TransactionRecord, error)
	StockSnapshot(ctx context.Context) ([]domain.StockSnapshotRecord, error)
	Catalog(ctx context.Context) ([]domain.CatalogRecord, error)
}
