package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dquispe/sismed-analytics/internal/dbf"
	"github.com/dquispe/sismed-analytics/pkg/logger"
)

// extraction describes one legacy table: its DBF file, the CSV it becomes,
// and the fixed column order to emit. A nil column list means "all columns in
// file order".
type extraction struct {
	DBFName string
	CSVName string
	Columns []string
}

var extractions = map[string]extraction{
	"tformdet": {
		DBFName: "TFORMDET.DBF",
		CSVName: "tformdet.csv",
		Columns: []string{
			"CODIGO_EJE", "CODIGO_PRE", "TIPSUM", "ANNOMES", "CODIGO_MED",
			"PRECIO", "INGRE", "VENTA", "SIS", "INTERSAN",
			"STOCK_FIN", "FEC_EXP", "MEDLOTE", "MEDREGSAN",
		},
	},
	"mstockalm": {
		DBFName: "MSTOCKALM.DBF",
		CSVName: "mstockalm.csv",
		Columns: []string{"ALMCOD", "MEDCOD", "STKSALDO", "STKPRECIO", "STKFECHULT", "FLG_SOCKET"},
	},
	"mproducto": {
		DBFName: "MPRODUCTO.DBF",
		CSVName: "mproducto.csv",
	},
}

func main() {
	app := &cli.App{
		Name:  "extract",
		Usage: "One-shot extraction of legacy SISMED DBF tables into flat CSV files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dbf-dir",
				Usage:   "Directory containing the legacy DBF tables",
				Value:   "./data/dbf",
				EnvVars: []string{"EXTRACT_DBF_DIR"},
			},
			&cli.StringFlag{
				Name:    "out-dir",
				Usage:   "Directory the CSV tables are written to",
				Value:   "./data",
				EnvVars: []string{"EXTRACT_OUT_DIR"},
			},
			&cli.StringSliceFlag{
				Name:  "tables",
				Usage: "Subset of tables to extract (tformdet, mstockalm, mproducto); default all",
			},
		},
		Action: runExtract,
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("extraction failed")
	}
}

func runExtract(c *cli.Context) error {
	tables := c.StringSlice("tables")
	if len(tables) == 0 {
		tables = []string{"tformdet", "mstockalm", "mproducto"}
	}

	if err := os.MkdirAll(c.String("out-dir"), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, name := range tables {
		ext, ok := extractions[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("unknown table %q", name)
		}

		dbfPath := filepath.Join(c.String("dbf-dir"), ext.DBFName)
		csvPath := filepath.Join(c.String("out-dir"), ext.CSVName)
		rows, err := extractTable(dbfPath, csvPath, ext.Columns)
		if err != nil {
			return fmt.Errorf("extracting %s: %w", name, err)
		}
		logger.Log.Info().Str("table", name).Str("csv", csvPath).Int("rows", rows).Msg("table extracted")
	}
	return nil
}

func extractTable(dbfPath, csvPath string, columns []string) (int, error) {
	f, err := os.Open(dbfPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	table, err := dbf.Read(f)
	if err != nil {
		return 0, err
	}

	if columns == nil {
		columns = table.FieldNames()
	}
	indices := make([]int, len(columns))
	for i, col := range columns {
		indices[i] = -1
		for j, name := range table.FieldNames() {
			if name == col {
				indices[i] = j
				break
			}
		}
		if indices[i] < 0 {
			return 0, fmt.Errorf("column %s not present in %s", col, dbfPath)
		}
	}

	out, err := os.Create(csvPath)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	if err := writer.Write(columns); err != nil {
		return 0, err
	}
	row := make([]string, len(columns))
	for _, src := range table.Rows {
		for i, idx := range indices {
			row[i] = src[idx]
		}
		if err := writer.Write(row); err != nil {
			return 0, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, err
	}
	return len(table.Rows), nil
}
