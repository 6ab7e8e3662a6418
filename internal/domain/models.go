// internal/domain/models.go
package domain

// TransactionRecord is a single movement line from the legacy TFORMDET table.
// Several lines may exist for the same (product, period) pair; consumers must
// sum them, never overwrite.
type TransactionRecord struct {
	ProductCode string  `json:"codigo_med"`
	Period      int     `json:"annomes"`
	Price       float64 `json:"precio"`
	SalesQty    float64 `json:"venta"`
	SISQty      float64 `json:"sis"`
	IntersanQty float64 `json:"intersan"`
	EndingStock float64 `json:"stock_fin"`
}

// TotalConsumption is the derived per-line consumption measure: direct sales
// plus the two subsidized distribution channels.
func (t TransactionRecord) TotalConsumption() float64 {
	return t.SalesQty + t.SISQty + t.IntersanQty
}

// StockSnapshotRecord is one warehouse balance line from MSTOCKALM. A product
// usually appears once per warehouse; balances are summed across warehouses.
type StockSnapshotRecord struct {
	WarehouseCode string  `json:"almcod"`
	ProductCode   string  `json:"medcod"`
	StockBalance  float64 `json:"stksaldo"`
}

// CatalogRecord is the product master row from MPRODUCTO, keyed by product code.
type CatalogRecord struct {
	ProductCode        string `json:"codigo_med"`
	Name               string `json:"name"`
	Presentation       string `json:"presentation"`
	Concentration      string `json:"concentration"`
	ProductType        string `json:"product_type"`
	PetitionType       string `json:"petition_type"`
	PharmaceuticalForm string `json:"pharmaceutical_form"`
	StrategyStatus     string `json:"strategy_status"`
}

// ProductMetrics holds the derived per-product statistics for one query window.
type ProductMetrics struct {
	ProductCode  string  `json:"codigo_med"`
	CPMA         float64 `json:"cpma"`          // average monthly consumption over the window
	ActiveMonths int     `json:"active_months"` // periods with consumption > 0
	LatestStock  float64 `json:"latest_stock"`
	Niveles      float64 `json:"niveles"` // latest stock / CPMA
	Situation    string  `json:"situacion"`
}

// Query carries the parsed parameters of one summary request. Period bounds are
// inclusive YYYYMM integers; the code filters arrive already deduplicated.
type Query struct {
	StartPeriod  int
	EndPeriod    int
	ProductTypes []string
	Strategies   []string
	RealTime     bool
}

// SummaryResponse is the outbound shape of the consumption summary endpoint.
type SummaryResponse struct {
	Count  int            `json:"count"`
	Months []string       `json:"months"`
	Data   []ResultRecord `json:"data"`
}

// StockBalance is the warehouse-summed snapshot balance for one product,
// served by the stock listing endpoint.
type StockBalance struct {
	ProductCode string  `json:"codigo_med"`
	Balance     float64 `json:"stock_balance"`
	Warehouses  int     `json:"warehouses"`
}
