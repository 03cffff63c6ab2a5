// Package returns computes money-weighted portfolio yield.
package returns

import (
	"math"
	"time"

	"github.com/bobmcallan/aurum/internal/models"
)

const (
	// Bisection bracket for the annualized rate. -99.99% to +1000% covers
	// anything a jewellery portfolio can plausibly produce.
	rateLow  = -0.9999
	rateHigh = 10.0

	maxIterations = 80
	tolerance     = 1e-7

	daysPerYear = 365.25
)

// BuildSchedule assembles the XIRR cash-flow schedule from investment
// records: one outflow per record with a parseable purchase date and a
// positive amount, plus a terminal inflow of the current portfolio value
// dated now. Records without a usable date are skipped, not errors.
func BuildSchedule(records []*models.InvestmentRecord, currentValue float64, now time.Time) []models.CashFlow {
	var flows []models.CashFlow
	for _, record := range records {
		date, ok := record.PurchaseDate()
		if !ok || record.TotalAmount <= 0 {
			continue
		}
		flows = append(flows, models.CashFlow{Date: date, Amount: -record.TotalAmount})
	}
	if len(flows) == 0 {
		return nil
	}

	flows = append(flows, models.CashFlow{Date: now, Amount: currentValue})
	models.SortCashFlows(flows)
	return flows
}

// Xirr solves the annualized internal rate of return for an irregular
// cash-flow schedule by bisection on the NPV function. nil means the yield
// is undefined: fewer than two flows, or no sign change across the bracket.
func Xirr(flows []models.CashFlow) *float64 {
	if len(flows) < 2 {
		return nil
	}

	sorted := make([]models.CashFlow, len(flows))
	copy(sorted, flows)
	models.SortCashFlows(sorted)

	t0 := sorted[0].Date
	npv := func(rate float64) float64 {
		total := 0.0
		for _, flow := range sorted {
			years := flow.Date.Sub(t0).Hours() / 24 / daysPerYear
			total += flow.Amount / math.Pow(1+rate, years)
		}
		return total
	}

	low, high := rateLow, rateHigh
	npvLow, npvHigh := npv(low), npv(high)
	if math.IsNaN(npvLow) || math.IsNaN(npvHigh) || npvLow*npvHigh > 0 {
		return nil
	}

	var mid float64
	for i := 0; i < maxIterations; i++ {
		mid = (low + high) / 2
		npvMid := npv(mid)
		if math.Abs(npvMid) < tolerance {
			break
		}
		if npvLow*npvMid < 0 {
			high = mid
		} else {
			low = mid
			npvLow = npvMid
		}
	}

	if math.IsNaN(mid) || math.IsInf(mid, 0) {
		return nil
	}
	return &mid
}
