// internal/pipeline/consumption/assemble.go
package consumption

import "github.com/dquispe/sismed-analytics/internal/domain"

// Assemble shapes the final response: total product count, the observed period
// labels ascending, and the full record list. Empty results produce a
// well-formed response with count 0 and empty (non-nil) lists, never nulls.
func Assemble(results []domain.ResultRecord, periods []int) *domain.SummaryResponse {
	months := make([]string, 0, len(periods))
	for _, p := range periods {
		months = append(months, domain.PeriodLabel(p))
	}
	if results == nil {
		results = []domain.ResultRecord{}
	}
	return &domain.SummaryResponse{
		Count:  len(results),
		Months: months,
		Data:   results,
	}
}
