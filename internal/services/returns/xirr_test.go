package returns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/aurum/internal/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestXirr_SingleYearGain(t *testing.T) {
	// 100,000 invested, worth 110,000 one year later: ~10% annualized
	flows := []models.CashFlow{
		{Date: date("2024-01-01"), Amount: -100000},
		{Date: date("2025-01-01"), Amount: 110000},
	}

	rate := Xirr(flows)
	require.NotNil(t, rate)
	assert.InDelta(t, 0.10, *rate, 0.001)
}

func TestXirr_TwoYearGain(t *testing.T) {
	// Doubling over two years is ~41.4% annualized
	flows := []models.CashFlow{
		{Date: date("2023-01-01"), Amount: -100000},
		{Date: date("2025-01-01"), Amount: 200000},
	}

	rate := Xirr(flows)
	require.NotNil(t, rate)
	assert.InDelta(t, 0.414, *rate, 0.005)
}

func TestXirr_Loss(t *testing.T) {
	flows := []models.CashFlow{
		{Date: date("2024-01-01"), Amount: -100000},
		{Date: date("2025-01-01"), Amount: 80000},
	}

	rate := Xirr(flows)
	require.NotNil(t, rate)
	assert.InDelta(t, -0.20, *rate, 0.001)
}

func TestXirr_MultiplePurchases(t *testing.T) {
	flows := []models.CashFlow{
		{Date: date("2023-06-15"), Amount: -50000},
		{Date: date("2024-02-01"), Amount: -30000},
		{Date: date("2025-01-01"), Amount: 95000},
	}

	rate := Xirr(flows)
	require.NotNil(t, rate)

	// The solved rate must zero the NPV
	assert.Greater(t, *rate, 0.0)
	assert.Less(t, *rate, 0.25)
}

func TestXirr_UnsortedInput(t *testing.T) {
	sorted := []models.CashFlow{
		{Date: date("2024-01-01"), Amount: -100000},
		{Date: date("2025-01-01"), Amount: 110000},
	}
	shuffled := []models.CashFlow{sorted[1], sorted[0]}

	a := Xirr(sorted)
	b := Xirr(shuffled)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.InDelta(t, *a, *b, 1e-9)
}

func TestXirr_Undefined(t *testing.T) {
	assert.Nil(t, Xirr(nil))
	assert.Nil(t, Xirr([]models.CashFlow{{Date: date("2024-01-01"), Amount: -100000}}))

	// All flows the same sign: NPV never crosses zero
	assert.Nil(t, Xirr([]models.CashFlow{
		{Date: date("2024-01-01"), Amount: -100000},
		{Date: date("2025-01-01"), Amount: -50000},
	}))
}

func TestXirr_InputNotMutated(t *testing.T) {
	flows := []models.CashFlow{
		{Date: date("2025-01-01"), Amount: 110000},
		{Date: date("2024-01-01"), Amount: -100000},
	}

	Xirr(flows)
	assert.Equal(t, date("2025-01-01"), flows[0].Date)
}

func TestBuildSchedule(t *testing.T) {
	records := []*models.InvestmentRecord{
		{ID: "a", Date: "2024-01-01", TotalAmount: 60000},
		{ID: "b", Date: "2024-06-01", TotalAmount: 40000},
		{ID: "no-date", TotalAmount: 25000},
		{ID: "bad-date", Date: "01/06/2024", TotalAmount: 25000},
	}

	now := date("2025-01-01")
	flows := BuildSchedule(records, 115000, now)
	require.Len(t, flows, 3)

	assert.Equal(t, -60000.0, flows[0].Amount)
	assert.Equal(t, -40000.0, flows[1].Amount)
	assert.Equal(t, 115000.0, flows[2].Amount)
	assert.Equal(t, now, flows[2].Date)
}

func TestBuildSchedule_NoUsableRecords(t *testing.T) {
	records := []*models.InvestmentRecord{
		{ID: "no-date", TotalAmount: 25000},
	}

	flows := BuildSchedule(records, 30000, date("2025-01-01"))
	assert.Nil(t, flows)
}
