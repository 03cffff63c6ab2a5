package valuation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/aurum/internal/common"
	"github.com/bobmcallan/aurum/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func testSnapshot() *models.RateSnapshot {
	s := &models.RateSnapshot{
		Date:       "2025-06-01",
		Provenance: models.ProvenanceLive,
		PerGram:    map[int]float64{24: 7200},
	}
	s.Normalize()
	return s
}

func newTestService() *Service {
	return NewService(common.NewSilentLogger())
}

func TestCurrentValue_Gold(t *testing.T) {
	record := &models.InvestmentRecord{
		ID:          "g1",
		Category:    models.CategoryGold,
		TotalAmount: 60000,
		WeightGrams: floatPtr(10),
		PurityKarat: intPtr(22),
	}

	value, ok := newTestService().CurrentValue(record, testSnapshot())
	require.True(t, ok)
	assert.Equal(t, 66000.0, value) // 10g * 6600 (22K derived from 7200)
}

func TestCurrentValue_GoldDefaultsPurity24(t *testing.T) {
	record := &models.InvestmentRecord{
		ID:          "g2",
		Category:    models.CategoryGold,
		TotalAmount: 70000,
		WeightGrams: floatPtr(10),
	}

	value, ok := newTestService().CurrentValue(record, testSnapshot())
	require.True(t, ok)
	assert.Equal(t, 72000.0, value)
}

func TestCurrentValue_GoldWeightFromMetadata(t *testing.T) {
	record := &models.InvestmentRecord{
		ID:          "g3",
		Category:    models.CategoryGold,
		TotalAmount: 60000,
		Metadata:    models.Metadata{models.MetaNetMetalWeight: 5.0},
	}

	value, ok := newTestService().CurrentValue(record, testSnapshot())
	require.True(t, ok)
	assert.Equal(t, 36000.0, value)
}

func TestCurrentValue_GoldNoWeight(t *testing.T) {
	record := &models.InvestmentRecord{
		ID:          "g4",
		Category:    models.CategoryGold,
		TotalAmount: 60000,
	}

	value, ok := newTestService().CurrentValue(record, testSnapshot())
	require.True(t, ok)
	assert.Equal(t, 0.0, value)
}

func TestCurrentValue_GoldRatesUnavailable(t *testing.T) {
	record := &models.InvestmentRecord{
		ID:          "g5",
		Category:    models.CategoryGold,
		TotalAmount: 60000,
		WeightGrams: floatPtr(10),
	}

	empty := &models.RateSnapshot{PerGram: map[int]float64{}}
	_, ok := newTestService().CurrentValue(record, empty)
	assert.False(t, ok)
}

func TestCurrentValue_Diamond(t *testing.T) {
	record := &models.InvestmentRecord{
		ID:          "d1",
		Category:    models.CategoryDiamond,
		TotalAmount: 100000,
		WeightGrams: floatPtr(5),
		Metadata:    models.Metadata{models.MetaStoneCost: 70000.0},
	}

	value, ok := newTestService().CurrentValue(record, testSnapshot())
	require.True(t, ok)
	assert.Equal(t, 106000.0, value) // 5g * 7200 + 70000
}

func TestCurrentValue_DiamondDerivedStone(t *testing.T) {
	record := &models.InvestmentRecord{
		ID:          "d2",
		Category:    models.CategoryDiamond,
		TotalAmount: 100000,
		WeightGrams: floatPtr(5),
		Metadata: models.Metadata{
			models.MetaGrossPrice:      100000.0,
			models.MetaNetMetalWeight:  5.0,
			models.MetaGoldRatePerGram: 6000.0,
		},
	}

	value, ok := newTestService().CurrentValue(record, testSnapshot())
	require.True(t, ok)
	// gold 5*7200 + stone (100000 - 5*6000)
	assert.Equal(t, 106000.0, value)
}

func TestCurrentValue_DiamondNoStoneData(t *testing.T) {
	record := &models.InvestmentRecord{
		ID:          "d3",
		Category:    models.CategoryDiamond,
		TotalAmount: 100000,
		WeightGrams: floatPtr(5),
	}

	value, ok := newTestService().CurrentValue(record, testSnapshot())
	require.True(t, ok)
	assert.Equal(t, 36000.0, value)
}

func TestCurrentValue_UnknownCategory(t *testing.T) {
	record := &models.InvestmentRecord{
		ID:          "x1",
		Category:    models.Category("platinum"),
		TotalAmount: 50000,
	}

	value, ok := newTestService().CurrentValue(record, testSnapshot())
	require.True(t, ok)
	assert.Equal(t, 50000.0, value)
}

func TestSummarize(t *testing.T) {
	records := []*models.InvestmentRecord{
		{
			ID: "g1", Category: models.CategoryGold, Name: "Chain",
			TotalAmount: 60000, WeightGrams: floatPtr(10), Date: "2024-06-01",
		},
		{
			ID: "d1", Category: models.CategoryDiamond, Name: "Ring",
			TotalAmount: 100000, WeightGrams: floatPtr(5), Date: "2024-01-15",
			Metadata: models.Metadata{models.MetaStoneCost: 70000.0},
		},
	}

	now, _ := time.Parse("2006-01-02", "2025-06-01")
	summary := newTestService().Summarize(records, testSnapshot(), now)

	assert.Equal(t, 160000.0, summary.TotalInvested)
	assert.Equal(t, 178000.0, summary.CurrentValue) // 72000 + 106000
	assert.Equal(t, 18000.0, summary.ReturnAmount)
	assert.InDelta(t, 11.25, summary.ReturnPercent, 0.001)
	assert.Equal(t, 2, summary.ItemCount)
	assert.Zero(t, summary.IndeterminateCount)
	require.NotNil(t, summary.Xirr)
	assert.Greater(t, *summary.Xirr, 0.0)
	assert.Equal(t, "2025-06-01", summary.RateDate)
	assert.Equal(t, models.ProvenanceLive, summary.RateProvenance)
	require.Len(t, summary.Items, 2)
	require.NotNil(t, summary.Items[0].CurrentValue)
	assert.Equal(t, 72000.0, *summary.Items[0].CurrentValue)
}

func TestSummarize_IndeterminateItems(t *testing.T) {
	records := []*models.InvestmentRecord{
		{
			ID: "g1", Category: models.CategoryGold, Name: "Chain",
			TotalAmount: 60000, WeightGrams: floatPtr(10), Date: "2024-06-01",
		},
	}

	now, _ := time.Parse("2006-01-02", "2025-06-01")
	summary := newTestService().Summarize(records, nil, now)

	assert.Equal(t, 60000.0, summary.TotalInvested)
	assert.Zero(t, summary.CurrentValue)
	assert.Zero(t, summary.ReturnPercent)
	assert.Equal(t, 1, summary.IndeterminateCount)
	assert.Nil(t, summary.Items[0].CurrentValue)
	assert.Nil(t, summary.Xirr)
}

func TestSummarize_Empty(t *testing.T) {
	now := time.Now()
	summary := newTestService().Summarize(nil, testSnapshot(), now)

	assert.Zero(t, summary.TotalInvested)
	assert.Zero(t, summary.ItemCount)
	assert.Nil(t, summary.Xirr)
	assert.NotNil(t, summary.Items)
}
