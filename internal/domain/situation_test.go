package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The classification is a pure function of (cpma, stock, ratio, stockKnown);
// every branch of the precedence chain is covered here.
func TestClassifySituation(t *testing.T) {
	tests := []struct {
		name       string
		cpma       float64
		stock      float64
		ratio      float64
		stockKnown bool
		want       string
	}{
		{name: "indeterminate when nothing known", cpma: 0, stock: 0, ratio: 0, stockKnown: false, want: SituationIndeterminate},
		{name: "overstock without consumption", cpma: 0, stock: 25, ratio: 0, stockKnown: true, want: SituationOverstockNoConsumption},
		{name: "normal without movement", cpma: 0, stock: 0, ratio: 0, stockKnown: true, want: SituationNormalNoMovement},
		{name: "overstock above threshold", cpma: 5, stock: 50, ratio: 10, stockKnown: true, want: SituationOverstock},
		{name: "understock below threshold", cpma: 10, stock: 5, ratio: 0.5, stockKnown: true, want: SituationUnderstock},
		{name: "normal in band", cpma: 10, stock: 30, ratio: 3, stockKnown: true, want: SituationNormal},
		{name: "boundary ratio exactly seven is normal", cpma: 1, stock: 7, ratio: 7, stockKnown: true, want: SituationNormal},
		{name: "boundary ratio exactly one is normal", cpma: 7, stock: 7, ratio: 1, stockKnown: true, want: SituationNormal},
		{name: "unknown stock with consumption falls back to ratio", cpma: 5, stock: 0, ratio: 0, stockKnown: false, want: SituationUnderstock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySituation(tt.cpma, tt.stock, tt.ratio, tt.stockKnown))
		})
	}
}
