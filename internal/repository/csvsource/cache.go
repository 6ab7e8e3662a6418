// internal/repository/csvsource/cache.go
package csvsource

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dquispe/sismed-analytics/internal/domain"
)

// Cached wraps a Source with per-table immutable snapshots invalidated by file
// modification time. A snapshot is built fully before it is swapped in, so
// concurrent readers never observe a half-loaded table; concurrent reloads of
// the same table are collapsed through singleflight. Callers must not mutate
// the returned slices.
type Cached struct {
	src   *Source
	group singleflight.Group

	transactions atomic.Pointer[snapshot[domain.TransactionRecord]]
	stock        atomic.Pointer[snapshot[domain.StockSnapshotRecord]]
	catalog      atomic.Pointer[snapshot[domain.CatalogRecord]]
}

type snapshot[T any] struct {
	rows    []T
	modTime time.Time
}

func NewCached(src *Source) *Cached {
	return &Cached{src: src}
}

func (c *Cached) Transactions(ctx context.Context) ([]domain.TransactionRecord, error) {
	return loadCached(ctx, c, "tformdet", TransactionsFile, &c.transactions, c.src.Transactions)
}

func (c *Cached) StockSnapshot(ctx context.Context) ([]domain.StockSnapshotRecord, error) {
	return loadCached(ctx, c, "mstockalm", StockFile, &c.stock, c.src.StockSnapshot)
}

func (c *Cached) Catalog(ctx context.Context) ([]domain.CatalogRecord, error) {
	return loadCached(ctx, c, "mproducto", CatalogFile, &c.catalog, c.src.Catalog)
}

func loadCached[T any](
	ctx context.Context,
	c *Cached,
	name, file string,
	ptr *atomic.Pointer[snapshot[T]],
	loadFn func(context.Context) ([]T, error),
) ([]T, error) {
	path := c.src.path(file)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.NotFoundError{Table: name, Path: path}
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if snap := ptr.Load(); snap != nil && snap.modTime.Equal(info.ModTime()) {
		return snap.rows, nil
	}

	rows, err, _ := c.group.Do(name, func() (any, error) {
		// Re-check under singleflight: another caller may have just reloaded.
		if snap := ptr.Load(); snap != nil && snap.modTime.Equal(info.ModTime()) {
			return snap.rows, nil
		}
		loaded, err := loadFn(ctx)
		if err != nil {
			return nil, err
		}
		ptr.Store(&snapshot[T]{rows: loaded, modTime: info.ModTime()})
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return rows.([]T), nil
}
