// internal/repository/csvsource/source.go
package csvsource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dquispe/sismed-analytics/internal/domain"
)

// File names the upstream extraction emits into the data directory. Column
// names follow the legacy SISMED tables.
const (
	TransactionsFile = "tformdet.csv"
	StockFile        = "mstockalm.csv"
	CatalogFile      = "mproducto.csv"
)

// Source loads the three record sets from flat CSV files in a data directory.
// Every call re-reads the file; wrap with Cached for snapshot reuse.
type Source struct {
	dir string
}

func New(dir string) *Source {
	return &Source{dir: dir}
}

func (s *Source) path(file string) string {
	return filepath.Join(s.dir, file)
}

// Transactions loads the per-period movement table (TFORMDET).
func (s *Source) Transactions(ctx context.Context) ([]domain.TransactionRecord, error) {
	t, err := s.readTable(ctx, "tformdet", TransactionsFile,
		[]string{"CODIGO_MED", "ANNOMES", "PRECIO", "VENTA", "SIS", "INTERSAN", "STOCK_FIN"})
	if err != nil {
		return nil, err
	}

	records := make([]domain.TransactionRecord, 0, len(t.rows))
	for i, row := range t.rows {
		period, err := strconv.Atoi(strings.TrimSpace(t.cell(row, "ANNOMES")))
		if err != nil || !domain.ValidPeriod(period) {
			log.Warn().Str("table", "tformdet").Int("line", i+2).
				Str("annomes", t.cell(row, "ANNOMES")).Msg("skipping row with malformed period")
			continue
		}
		records = append(records, domain.TransactionRecord{
			ProductCode: strings.TrimSpace(t.cell(row, "CODIGO_MED")),
			Period:      period,
			Price:       t.number(row, "PRECIO"),
			SalesQty:    t.number(row, "VENTA"),
			SISQty:      t.number(row, "SIS"),
			IntersanQty: t.number(row, "INTERSAN"),
			EndingStock: t.number(row, "STOCK_FIN"),
		})
	}
	return records, nil
}

// StockSnapshot loads the per-warehouse balance table (MSTOCKALM).
func (s *Source) StockSnapshot(ctx context.Context) ([]domain.StockSnapshotRecord, error) {
	t, err := s.readTable(ctx, "mstockalm", StockFile, []string{"ALMCOD", "MEDCOD", "STKSALDO"})
	if err != nil {
		return nil, err
	}

	records := make([]domain.StockSnapshotRecord, 0, len(t.rows))
	for _, row := range t.rows {
		records = append(records, domain.StockSnapshotRecord{
			WarehouseCode: strings.TrimSpace(t.cell(row, "ALMCOD")),
			ProductCode:   strings.TrimSpace(t.cell(row, "MEDCOD")),
			StockBalance:  t.number(row, "STKSALDO"),
		})
	}
	return records, nil
}

// Catalog loads the product master table (MPRODUCTO). Rows are returned as-is;
// deduplication by product code happens in the pipeline.
func (s *Source) Catalog(ctx context.Context) ([]domain.CatalogRecord, error) {
	t, err := s.readTable(ctx, "mproducto", CatalogFile,
		[]string{"MEDCOD", "MEDNOM", "MEDPRES", "MEDCONC", "MEDTIP", "MEDPET", "MEDFF", "MEDEST"})
	if err != nil {
		return nil, err
	}

	records := make([]domain.CatalogRecord, 0, len(t.rows))
	for _, row := range t.rows {
		records = append(records, domain.CatalogRecord{
			ProductCode:        strings.TrimSpace(t.cell(row, "MEDCOD")),
			Name:               strings.TrimSpace(t.cell(row, "MEDNOM")),
			Presentation:       strings.TrimSpace(t.cell(row, "MEDPRES")),
			Concentration:      strings.TrimSpace(t.cell(row, "MEDCONC")),
			ProductType:        strings.TrimSpace(t.cell(row, "MEDTIP")),
			PetitionType:       strings.TrimSpace(t.cell(row, "MEDPET")),
			PharmaceuticalForm: strings.TrimSpace(t.cell(row, "MEDFF")),
			StrategyStatus:     strings.TrimSpace(t.cell(row, "MEDEST")),
		})
	}
	return records, nil
}

// table is one loaded CSV with its header index.
type table struct {
	name string
	cols map[string]int
	rows [][]string
}

func (t *table) cell(row []string, col string) string {
	idx := t.cols[col]
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

// number parses a numeric cell tolerantly: blank reads as 0, anything
// unparseable reads as 0 with a warning. Schema problems are caught at the
// column level, not per cell.
func (t *table) number(row []string, col string) float64 {
	raw := strings.TrimSpace(t.cell(row, col))
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Warn().Str("table", t.name).Str("column", col).Str("value", raw).
			Msg("unparseable numeric cell, reading as 0")
		return 0
	}
	return v
}

func (s *Source) readTable(ctx context.Context, name, file string, required []string) (*table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.path(file)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.NotFoundError{Table: name, Path: path}
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		// Header row is part of the schema contract.
		return nil, &domain.SchemaError{Table: name, Column: required[0]}
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s header: %w", path, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, col := range required {
		if _, ok := cols[col]; !ok {
			return nil, &domain.SchemaError{Table: name, Column: col}
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &table{name: name, cols: cols, rows: rows}, nil
}
