// Package valuation computes read-time market values for stored investments.
package valuation

import (
	"math"
	"time"

	"github.com/bobmcallan/aurum/internal/common"
	"github.com/bobmcallan/aurum/internal/models"
	"github.com/bobmcallan/aurum/internal/services/returns"
)

// Service values investments against a rate snapshot. Stateless; the
// snapshot is passed in per call so fallback provenance stays visible to
// the caller.
type Service struct {
	logger *common.Logger
}

// NewService creates a new valuation service
func NewService(logger *common.Logger) *Service {
	return &Service{logger: logger}
}

// CurrentValue computes one investment's present market value. ok is false
// when the value is indeterminate (no usable rate for the item's tier),
// which the aggregate must surface rather than coerce to zero.
func (s *Service) CurrentValue(record *models.InvestmentRecord, snapshot *models.RateSnapshot) (float64, bool) {
	switch record.Category {
	case models.CategoryGold:
		rate, ok := snapshot.Rate(record.Purity())
		if !ok {
			return 0, false
		}
		return models.Round2(rate * record.NetWeight()), true

	case models.CategoryDiamond:
		goldValue := 0.0
		if rate, ok := snapshot.Rate(record.Purity()); ok {
			goldValue = rate * record.NetWeight()
		}
		return models.Round2(goldValue + s.diamondValue(record)), true
	}

	// Unknown category: the invested amount stands in, flagged loudly
	s.logger.Warn().
		Str("id", record.ID).
		Str("category", string(record.Category)).
		Msg("Unknown category, using invested amount as current value")
	return record.TotalAmount, true
}

// diamondValue resolves the stone component from the metadata snapshot:
// the explicit stone cost, else gross minus metal when all three inputs
// were recorded, else 0.
func (s *Service) diamondValue(record *models.InvestmentRecord) float64 {
	if stone, ok := record.Metadata.PositiveFloat(models.MetaStoneCost); ok {
		return stone
	}

	gross, okGross := record.Metadata.PositiveFloat(models.MetaGrossPrice)
	weight, okWeight := record.Metadata.PositiveFloat(models.MetaNetMetalWeight)
	rate, okRate := record.Metadata.PositiveFloat(models.MetaGoldRatePerGram)
	if okGross && okWeight && okRate {
		return math.Max(0, gross-weight*rate)
	}
	return 0
}

// Summarize aggregates the dashboard figures for the whole portfolio.
// Indeterminate items contribute their invested amount to neither current
// value nor the return figures; they are counted separately. snapshot may
// be nil when rates are unavailable entirely.
func (s *Service) Summarize(records []*models.InvestmentRecord, snapshot *models.RateSnapshot, now time.Time) *models.PortfolioSummary {
	summary := &models.PortfolioSummary{
		ItemCount: len(records),
		Items:     make([]models.ItemValuation, 0, len(records)),
	}
	if snapshot != nil {
		summary.RateDate = snapshot.Date
		summary.RateProvenance = snapshot.Provenance
	}

	determinateInvested := 0.0
	for _, record := range records {
		item := models.ItemValuation{
			ID:       record.ID,
			Name:     record.Name,
			Category: record.Category,
			Invested: record.TotalAmount,
		}
		summary.TotalInvested += record.TotalAmount

		value, ok := s.CurrentValue(record, snapshot)
		if !ok {
			summary.IndeterminateCount++
			summary.Items = append(summary.Items, item)
			continue
		}

		ret := models.Round2(value - record.TotalAmount)
		item.CurrentValue = &value
		item.ReturnAmount = &ret
		if record.TotalAmount > 0 {
			pct := models.Round2(ret / record.TotalAmount * 100)
			item.ReturnPercent = &pct
		}

		summary.CurrentValue += value
		determinateInvested += record.TotalAmount
		summary.Items = append(summary.Items, item)
	}

	summary.TotalInvested = models.Round2(summary.TotalInvested)
	summary.CurrentValue = models.Round2(summary.CurrentValue)
	summary.ReturnAmount = models.Round2(summary.CurrentValue - determinateInvested)
	if determinateInvested > 0 {
		summary.ReturnPercent = models.Round2(summary.ReturnAmount / determinateInvested * 100)
	}

	flows := returns.BuildSchedule(determinateRecords(records, summary), summary.CurrentValue, now)
	summary.Xirr = returns.Xirr(flows)

	return summary
}

// determinateRecords filters to the records whose value contributed to
// CurrentValue, so the XIRR schedule matches the terminal inflow.
func determinateRecords(records []*models.InvestmentRecord, summary *models.PortfolioSummary) []*models.InvestmentRecord {
	if summary.IndeterminateCount == 0 {
		return records
	}
	valued := make(map[string]bool, len(summary.Items))
	for _, item := range summary.Items {
		if item.CurrentValue != nil {
			valued[item.ID] = true
		}
	}
	out := make([]*models.InvestmentRecord, 0, len(records))
	for _, record := range records {
		if valued[record.ID] {
			out = append(out, record)
		}
	}
	return out
}
