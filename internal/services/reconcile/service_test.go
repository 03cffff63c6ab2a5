package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/aurum/internal/common"
	"github.com/bobmcallan/aurum/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func newTestService() *Service {
	return NewService(common.NewSilentLogger())
}

func TestReconcileGold_Components(t *testing.T) {
	// 10g at 6000/g with 500/g making: metal 60000 + making 5000 = 65000
	// gross; + GST 1000 - discount 200 = 65800
	fields := &models.BillFields{
		NetMetalWeight:       floatPtr(10),
		GoldRatePerGram:      floatPtr(6000),
		MakingChargesPerGram: floatPtr(500),
		GST:                  models.GSTBreakdown{Total: floatPtr(1000)},
		Discounts:            floatPtr(200),
	}

	outcome, err := newTestService().Reconcile(models.CategoryGold, fields)
	require.NoError(t, err)

	assert.Equal(t, 65800.00, outcome.TotalAmount)
	assert.Equal(t, 65000.00, outcome.ComponentTotal)
	assert.False(t, outcome.NeedsConfirmation)
}

func TestReconcileGold_FinalPriceAuthoritative(t *testing.T) {
	fields := &models.BillFields{
		NetMetalWeight:  floatPtr(10),
		GoldRatePerGram: floatPtr(6000),
		FinalPrice:      floatPtr(70000),
	}

	outcome, err := newTestService().Reconcile(models.CategoryGold, fields)
	require.NoError(t, err)
	assert.Equal(t, 70000.00, outcome.TotalAmount)
}

func TestReconcileGold_GrossPrice(t *testing.T) {
	fields := &models.BillFields{
		GrossPrice: floatPtr(65000),
		GST:        models.GSTBreakdown{CGST: floatPtr(500), SGST: floatPtr(500)},
		Discounts:  floatPtr(200),
	}

	outcome, err := newTestService().Reconcile(models.CategoryGold, fields)
	require.NoError(t, err)
	assert.Equal(t, 65800.00, outcome.TotalAmount)
}

func TestReconcileGold_StoneNeverDerived(t *testing.T) {
	// Stone cost absent: components price only the metal even though the
	// gross weight exceeds the net metal weight
	fields := &models.BillFields{
		NetMetalWeight:  floatPtr(10),
		GrossWeight:     floatPtr(12),
		GoldRatePerGram: floatPtr(6000),
	}

	outcome, err := newTestService().Reconcile(models.CategoryGold, fields)
	require.NoError(t, err)
	assert.Equal(t, 60000.00, outcome.TotalAmount)

	_, hasStone := outcome.Metadata.Float(models.MetaStoneCost)
	assert.False(t, hasStone)
}

func TestReconcileGold_ExplicitStone(t *testing.T) {
	fields := &models.BillFields{
		NetMetalWeight:  floatPtr(10),
		GoldRatePerGram: floatPtr(6000),
		StoneCost:       floatPtr(5000),
	}

	outcome, err := newTestService().Reconcile(models.CategoryGold, fields)
	require.NoError(t, err)
	assert.Equal(t, 65000.00, outcome.TotalAmount)

	stone, ok := outcome.Metadata.Float(models.MetaStoneCost)
	require.True(t, ok)
	assert.Equal(t, 5000.0, stone)
}

func TestReconcileGold_HallmarkCharges(t *testing.T) {
	fields := &models.BillFields{
		NetMetalWeight:  floatPtr(10),
		GoldRatePerGram: floatPtr(6000),
		HallmarkCharges: floatPtr(45),
	}

	outcome, err := newTestService().Reconcile(models.CategoryGold, fields)
	require.NoError(t, err)
	assert.Equal(t, 60045.00, outcome.TotalAmount)
}

func TestReconcileGold_NoPriceData(t *testing.T) {
	fields := &models.BillFields{Vendor: "Tanishq"}

	_, err := newTestService().Reconcile(models.CategoryGold, fields)
	assert.Error(t, err)
}

func TestReconcileDiamond_DerivedStone(t *testing.T) {
	// gross 100000, metal 5g * 6000 = 30000: stone derives to 70000
	fields := &models.BillFields{
		NetMetalWeight:  floatPtr(5),
		GoldRatePerGram: floatPtr(6000),
		GrossPrice:      floatPtr(100000),
	}

	outcome, err := newTestService().Reconcile(models.CategoryDiamond, fields)
	require.NoError(t, err)

	assert.Equal(t, 100000.00, outcome.TotalAmount)
	stone, ok := outcome.Metadata.Float(models.MetaStoneCost)
	require.True(t, ok)
	assert.Equal(t, 70000.0, stone)
}

func TestReconcileDiamond_FinalPrice(t *testing.T) {
	fields := &models.BillFields{
		GrossPrice: floatPtr(100000),
		FinalPrice: floatPtr(98000),
	}

	outcome, err := newTestService().Reconcile(models.CategoryDiamond, fields)
	require.NoError(t, err)
	assert.Equal(t, 98000.00, outcome.TotalAmount)
}

func TestReconcileDiamond_ComponentsAloneFail(t *testing.T) {
	fields := &models.BillFields{
		NetMetalWeight:  floatPtr(5),
		GoldRatePerGram: floatPtr(6000),
		StoneCost:       floatPtr(70000),
	}

	_, err := newTestService().Reconcile(models.CategoryDiamond, fields)
	assert.ErrorIs(t, err, ErrIndeterminatePrice)
}

func TestReconcileDiamond_InconsistencyFlagged(t *testing.T) {
	// Explicit components sum to 95000 against a stated gross of 100000
	fields := &models.BillFields{
		NetMetalWeight:  floatPtr(5),
		GoldRatePerGram: floatPtr(6000),
		StoneCost:       floatPtr(65000),
		GrossPrice:      floatPtr(100000),
	}

	outcome, err := newTestService().Reconcile(models.CategoryDiamond, fields)
	require.NoError(t, err)

	assert.True(t, outcome.NeedsConfirmation)
	assert.Equal(t, 95000.00, outcome.ComponentTotal)
	assert.Equal(t, 5000.00, outcome.Discrepancy)
	assert.Equal(t, 100000.00, outcome.TotalAmount)
}

func TestReconcileDiamond_WithinTolerance(t *testing.T) {
	fields := &models.BillFields{
		NetMetalWeight:  floatPtr(5),
		GoldRatePerGram: floatPtr(6000),
		StoneCost:       floatPtr(69999.50),
		GrossPrice:      floatPtr(100000),
	}

	outcome, err := newTestService().Reconcile(models.CategoryDiamond, fields)
	require.NoError(t, err)
	assert.False(t, outcome.NeedsConfirmation)
}

func TestReconcile_MalformedFieldsTreatedAsAbsent(t *testing.T) {
	nan := floatPtr(0)
	*nan = *nan / *nan // NaN

	fields := &models.BillFields{
		NetMetalWeight:  nan,
		GoldRatePerGram: floatPtr(6000),
		FinalPrice:      floatPtr(50000),
	}

	outcome, err := newTestService().Reconcile(models.CategoryGold, fields)
	require.NoError(t, err)
	assert.Equal(t, 50000.00, outcome.TotalAmount)

	_, hasWeight := outcome.Metadata.Float(models.MetaNetMetalWeight)
	assert.False(t, hasWeight)
}

func TestReconcile_Idempotent(t *testing.T) {
	fields := &models.BillFields{
		NetMetalWeight:       floatPtr(10),
		GoldRatePerGram:      floatPtr(6000),
		MakingChargesPerGram: floatPtr(500),
		GST:                  models.GSTBreakdown{Total: floatPtr(1000)},
	}

	svc := newTestService()
	first, err := svc.Reconcile(models.CategoryGold, fields)
	require.NoError(t, err)
	second, err := svc.Reconcile(models.CategoryGold, fields)
	require.NoError(t, err)

	assert.Equal(t, first.TotalAmount, second.TotalAmount)
	assert.Equal(t, first.Metadata, second.Metadata)
}

func TestReconcile_UnknownCategory(t *testing.T) {
	_, err := newTestService().Reconcile(models.Category("platinum"), &models.BillFields{
		FinalPrice: floatPtr(10000),
	})
	assert.Error(t, err)
}
