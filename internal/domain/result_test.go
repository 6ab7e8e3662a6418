package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultRecordMarshalOrder(t *testing.T) {
	record := ResultRecord{
		ProductCode: "P1",
		Periods:     []int{202401, 202402},
		Consumption: map[int]float64{202401: 10, 202402: 0},
		Metrics: ProductMetrics{
			ProductCode:  "P1",
			CPMA:         5,
			ActiveMonths: 1,
			LatestStock:  50,
			Niveles:      10,
			Situation:    SituationOverstock,
		},
		Catalog: CatalogRecord{
			ProductCode:        "P1",
			Name:               "PARACETAMOL",
			Presentation:       "TAB",
			Concentration:      "500 mg",
			ProductType:        "M",
			PetitionType:       UnknownAttribute,
			PharmaceuticalForm: "TABLETA",
			StrategyStatus:     "E",
		},
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)

	// Flat object with one key per observed month.
	var flat map[string]any
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.Equal(t, "P1", flat["codigo_med"])
	assert.Equal(t, 10.0, flat["202401"])
	assert.Equal(t, 0.0, flat["202402"])
	assert.Equal(t, SituationOverstock, flat["situacion"])
	assert.Equal(t, "PARACETAMOL", flat["name"])

	// Fixed column order: code first, then the months ascending, then metrics,
	// then catalog attributes.
	s := string(data)
	assert.True(t, strings.Index(s, `"codigo_med"`) < strings.Index(s, `"202401"`))
	assert.True(t, strings.Index(s, `"202401"`) < strings.Index(s, `"202402"`))
	assert.True(t, strings.Index(s, `"202402"`) < strings.Index(s, `"cpma"`))
	assert.True(t, strings.Index(s, `"situacion"`) < strings.Index(s, `"name"`))
}

func TestResultRecordMarshalDeterministic(t *testing.T) {
	record := ResultRecord{
		ProductCode: "P9",
		Periods:     []int{202401, 202402, 202403},
		Consumption: map[int]float64{202401: 1, 202402: 2, 202403: 3},
	}

	first, err := json.Marshal(record)
	require.NoError(t, err)
	second, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
