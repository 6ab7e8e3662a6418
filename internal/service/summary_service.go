// internal/service/summary_service.go
package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/dquispe/sismed-analytics/internal/domain"
	"github.com/dquispe/sismed-analytics/internal/pipeline/consumption"
	"github.com/dquispe/sismed-analytics/internal/repository"
)

// SummaryService runs the consumption analytics pipeline over the record
// source. Everything is request-scoped: each call loads the tables it needs,
// runs the stages left to right, and discards the working set.
type SummaryService struct {
	source repository.RecordSource
}

func NewSummaryService(source repository.RecordSource) *SummaryService {
	return &SummaryService{source: source}
}

// Summary computes the monthly consumption matrix and per-product
// stock-sufficiency metrics for the query window. Empty filter results are a
// normal outcome and produce a well-formed empty response.
func (s *SummaryService) Summary(ctx context.Context, q domain.Query) (*domain.SummaryResponse, error) {
	transactions, err := s.source.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := s.source.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	var snapshot []domain.StockSnapshotRecord
	if q.RealTime {
		snapshot, err = s.source.StockSnapshot(ctx)
		if err != nil {
			return nil, err
		}
	}

	filtered := consumption.Filter(transactions, catalog, q)
	matrix := consumption.Aggregate(filtered)

	metrics, err := consumption.NewCalculator(q.RealTime).Compute(matrix, filtered, snapshot)
	if err != nil {
		return nil, err
	}

	results := consumption.Enrich(metrics, matrix, catalog)
	resp := consumption.Assemble(results, matrix.Periods())

	log.Debug().
		Int("transactions", len(transactions)).
		Int("filtered", len(filtered)).
		Int("products", resp.Count).
		Int("months", len(resp.Months)).
		Bool("real_time", q.RealTime).
		Msg("summary computed")

	return resp, nil
}

// Products lists the deduplicated catalog, optionally restricted by product
// type and strategy codes (same AND semantics as the summary filters).
func (s *SummaryService) Products(ctx context.Context, productTypes, strategies []string) ([]domain.CatalogRecord, error) {
	catalog, err := s.source.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	typeSet := toSet(productTypes)
	strategySet := toSet(strategies)

	byCode := consumption.DeduplicateCatalog(catalog)
	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]domain.CatalogRecord, 0, len(codes))
	for _, code := range codes {
		row := byCode[code]
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
		out = append(out, row)
	}
	return out, nil
}

// Stock returns warehouse-summed snapshot balances per product, optionally
// restricted to a set of product codes.
func (s *SummaryService) Stock(ctx context.Context, productCodes []string) ([]domain.StockBalance, error) {
	snapshot, err := s.source.StockSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	wanted := toSet(productCodes)
	sums := make(map[string]*domain.StockBalance)
	for _, row := range snapshot {
		if wanted != nil {
			if _, ok := wanted[row.ProductCode]; !ok {
				continue
			}
		}
		b, ok := sums[row.ProductCode]
		if !ok {
			b = &domain.StockBalance{ProductCode: row.ProductCode}
			sums[row.ProductCode] = b
		}
		b.Balance += row.StockBalance
		b.Warehouses++
	}

	codes := make([]string, 0, len(sums))
	for code := range sums {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]domain.StockBalance, 0, len(codes))
	for _, code := range codes {
		out = append(out, *sums[code])
	}
	return out, nil
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
