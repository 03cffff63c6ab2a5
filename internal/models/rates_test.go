package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_DerivesLowerTiersFrom24K(t *testing.T) {
	snapshot := &RateSnapshot{
		Date:    "2024-01-02",
		PerGram: map[int]float64{24: 7200},
	}

	snapshot.Normalize()

	assert.Equal(t, 7200.0, snapshot.PerGram[24])
	assert.Equal(t, 6600.0, snapshot.PerGram[22])  // 7200 * 22/24
	assert.Equal(t, 5400.0, snapshot.PerGram[18])  // 7200 * 18/24
	assert.Equal(t, 4200.0, snapshot.PerGram[14])  // 7200 * 14/24
	assert.Equal(t, 2700.0, snapshot.PerGram[9])   // 7200 * 9/24
}

func TestNormalize_RoundsToTwoDecimals(t *testing.T) {
	snapshot := &RateSnapshot{
		Date:    "2024-01-02",
		PerGram: map[int]float64{24: 7510.89},
	}

	snapshot.Normalize()

	// 7510.89 * 14/24 = 4381.3525 → 4381.35
	assert.Equal(t, 4381.35, snapshot.PerGram[14])
	// 7510.89 * 9/24 = 2816.58375 → 2816.58
	assert.Equal(t, 2816.58, snapshot.PerGram[9])
}

func TestNormalize_PreservesExistingTiers(t *testing.T) {
	// Retail 22K rates carry a premium over the pure linear derivation;
	// a stated tier must never be overwritten.
	snapshot := &RateSnapshot{
		Date:    "2024-01-02",
		PerGram: map[int]float64{24: 7200, 22: 6750},
	}

	snapshot.Normalize()

	assert.Equal(t, 6750.0, snapshot.PerGram[22])
	assert.Equal(t, 4200.0, snapshot.PerGram[14])
}

func TestNormalize_No24KLeavesSnapshotAlone(t *testing.T) {
	snapshot := &RateSnapshot{
		Date:    "2024-01-02",
		PerGram: map[int]float64{22: 6750},
	}

	snapshot.Normalize()

	_, ok := snapshot.PerGram[14]
	assert.False(t, ok)
}

func TestIsStructurallyEmpty(t *testing.T) {
	assert.True(t, (&RateSnapshot{}).IsStructurallyEmpty())
	assert.True(t, (&RateSnapshot{PerGram: map[int]float64{}}).IsStructurallyEmpty())
	assert.True(t, (&RateSnapshot{PerGram: map[int]float64{24: 0}}).IsStructurallyEmpty())

	var nilSnapshot *RateSnapshot
	assert.True(t, nilSnapshot.IsStructurallyEmpty())

	assert.False(t, (&RateSnapshot{PerGram: map[int]float64{24: 7200}}).IsStructurallyEmpty())
}

func TestRate_TierLookupFallsBackTo24K(t *testing.T) {
	snapshot := &RateSnapshot{
		PerGram: map[int]float64{24: 7200, 22: 6600},
	}

	rate, ok := snapshot.Rate(22)
	require.True(t, ok)
	assert.Equal(t, 6600.0, rate)

	// 18K absent — falls back to 24K
	rate, ok = snapshot.Rate(18)
	require.True(t, ok)
	assert.Equal(t, 7200.0, rate)
}

func TestRate_Unavailable(t *testing.T) {
	snapshot := &RateSnapshot{PerGram: map[int]float64{}}
	_, ok := snapshot.Rate(22)
	assert.False(t, ok)

	var nilSnapshot *RateSnapshot
	_, ok = nilSnapshot.Rate(24)
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	valid := &RateSnapshot{Date: "2024-01-02", PerGram: map[int]float64{24: 7200}}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&RateSnapshot{PerGram: map[int]float64{24: 7200}}).Validate())
	assert.Error(t, (&RateSnapshot{Date: "02-01-2024", PerGram: map[int]float64{24: 7200}}).Validate())
	assert.Error(t, (&RateSnapshot{Date: "2024-01-02"}).Validate())
}

func TestFallbackProvenance(t *testing.T) {
	assert.Equal(t, "fallback:2024-01-02", FallbackProvenance("2024-01-02"))
}
