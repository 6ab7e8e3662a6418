package domain

// Stock-sufficiency classification labels. The plain Overstock/Understock pair
// comes from the ratio thresholds; the "No Consumption"/"No Movement" variants
// cover products whose average consumption over the window is zero.
const (
	SituationOverstock              = "Overstock"
	SituationUnderstock             = "Understock"
	SituationNormal                 = "Normal"
	SituationIndeterminate          = "Indeterminate"
	SituationOverstockNoConsumption = "Overstock (No Consumption)"
	SituationNormalNoMovement       = "Normal (No Movement)"
)

// Classification thresholds for the stock-to-consumption ratio: above
// OverstockRatio months of cover is overstock, below UnderstockRatio is
// understock.
const (
	OverstockRatio  = 7.0
	UnderstockRatio = 1.0
)

// ClassifySituation maps a product's metrics to its situation label. Evaluated
// strictly in precedence order:
//
//  1. stock unknown and no consumption -> Indeterminate (nothing to judge on)
//  2. CPMA == 0 with stock on hand     -> Overstock (No Consumption)
//  3. CPMA == 0 otherwise              -> Normal (No Movement)
//  4. ratio above the overstock bound  -> Overstock
//  5. ratio below the understock bound -> Understock
//  6. anything else                    -> Normal
//
// stockKnown is false only when the stock source had no row at all for the
// product (real-time mode against an incomplete snapshot).
func ClassifySituation(cpma, latestStock, ratio float64, stockKnown bool) string {
	switch {
	case !stockKnown && cpma == 0:
		return SituationIndeterminate
	case cpma == 0 && latestStock > 0:
		return SituationOverstockNoConsumption
	case cpma == 0:
		return SituationNormalNoMovement
	case ratio > OverstockRatio:
		return SituationOverstock
	case ratio < UnderstockRatio:
		return SituationUnderstock
	default:
		return SituationNormal
	}
}
