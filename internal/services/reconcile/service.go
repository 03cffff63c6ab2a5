// Package reconcile derives the authoritative invested amount from a bill's
// component fields.
package reconcile

import (
	"errors"
	"fmt"
	"math"

	"github.com/bobmcallan/aurum/internal/common"
	"github.com/bobmcallan/aurum/internal/models"
)

// ErrIndeterminatePrice means the bill carries neither a final price nor a
// gross price, so no total can be derived from components alone.
var ErrIndeterminatePrice = errors.New("bill has neither final price nor gross price")

// InconsistencyTolerance is the rupee threshold above which an invoice
// gross price conflicting with the component-derived total is flagged
// rather than accepted silently.
const InconsistencyTolerance = 1.00

// Service reconciles extracted bill components into a single invested
// amount. It is pure computation over the input fields; the caller decides
// what to do with a flagged inconsistency.
type Service struct {
	logger *common.Logger
}

// NewService creates a new reconciliation service
func NewService(logger *common.Logger) *Service {
	return &Service{logger: logger}
}

// Reconcile derives the total invested amount for a category's field set.
//
// Gold precedence: finalPrice, then grossPrice + GST - discounts, then the
// full component sum. A stone cost is never derived by subtraction for
// gold; only an explicit positive figure counts.
//
// Diamond precedence: finalPrice, then grossPrice + GST - discounts;
// components alone cannot price a diamond item. The stone value is the
// explicit cost, or gross minus metal when both are stated. When an
// explicit stone cost plus metal disagrees with the stated gross beyond
// the tolerance, the outcome is flagged for confirmation instead of
// picking a winner.
func (s *Service) Reconcile(category models.Category, fields *models.BillFields) (*models.ReconcileOutcome, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	fields.Sanitize()
	outcome := &models.ReconcileOutcome{
		Metadata: buildMetadata(category, fields),
	}

	var err error
	switch category {
	case models.CategoryGold:
		err = s.reconcileGold(fields, outcome)
	case models.CategoryDiamond:
		err = s.reconcileDiamond(fields, outcome)
	}
	if err != nil {
		return nil, err
	}

	outcome.TotalAmount = models.Round2(outcome.TotalAmount)
	if outcome.TotalAmount <= 0 {
		return nil, fmt.Errorf("reconciled total must be positive, got %.2f", outcome.TotalAmount)
	}

	s.logger.Debug().
		Str("category", string(category)).
		Float64("total", outcome.TotalAmount).
		Bool("needs_confirmation", outcome.NeedsConfirmation).
		Msg("Bill reconciled")

	return outcome, nil
}

func (s *Service) reconcileGold(fields *models.BillFields, outcome *models.ReconcileOutcome) error {
	if fields.FinalPrice != nil && *fields.FinalPrice > 0 {
		outcome.TotalAmount = *fields.FinalPrice
		return nil
	}

	if fields.GrossPrice != nil && *fields.GrossPrice > 0 {
		outcome.TotalAmount = *fields.GrossPrice + models.OrZero(fields.GST.Amount()) - models.OrZero(fields.Discounts)
		return nil
	}

	metal, ok := goldComponentValue(fields)
	if !ok {
		return fmt.Errorf("gold bill needs a final price, gross price, or weight and rate")
	}
	gross := metal + explicitStone(fields)
	outcome.ComponentTotal = models.Round2(gross)
	outcome.TotalAmount = gross + models.OrZero(fields.GST.Amount()) - models.OrZero(fields.Discounts)
	return nil
}

func (s *Service) reconcileDiamond(fields *models.BillFields, outcome *models.ReconcileOutcome) error {
	metal, haveMetal := diamondMetalValue(fields)
	stone := explicitStone(fields)

	if stone > 0 {
		// Advisory check: explicit components vs the stated gross
		if fields.GrossPrice != nil && haveMetal {
			component := metal + stone
			discrepancy := math.Abs(*fields.GrossPrice - component)
			if discrepancy > InconsistencyTolerance {
				outcome.NeedsConfirmation = true
				outcome.ComponentTotal = models.Round2(component)
				outcome.Discrepancy = models.Round2(discrepancy)
			}
		}
	} else if fields.GrossPrice != nil && haveMetal {
		stone = math.Max(0, *fields.GrossPrice-metal)
		outcome.Metadata[models.MetaStoneCost] = models.Round2(stone)
	}

	if fields.FinalPrice != nil && *fields.FinalPrice > 0 {
		outcome.TotalAmount = *fields.FinalPrice
		return nil
	}

	if fields.GrossPrice != nil && *fields.GrossPrice > 0 {
		outcome.TotalAmount = *fields.GrossPrice + models.OrZero(fields.GST.Amount()) - models.OrZero(fields.Discounts)
		return nil
	}

	return ErrIndeterminatePrice
}

// goldComponentValue computes weight*rate + making + hallmark. ok is false
// when weight or rate is absent; add-ons default to zero.
func goldComponentValue(fields *models.BillFields) (float64, bool) {
	if fields.NetMetalWeight == nil || fields.GoldRatePerGram == nil {
		return 0, false
	}
	w, r := *fields.NetMetalWeight, *fields.GoldRatePerGram
	if w <= 0 || r <= 0 {
		return 0, false
	}

	value := w * r
	value += w * models.OrZero(fields.MakingChargesPerGram)
	value += models.OrZero(fields.HallmarkCharges)
	return value, true
}

// diamondMetalValue is the plain metal figure weight*rate, the subtrahend
// for deriving a stone value from the gross price.
func diamondMetalValue(fields *models.BillFields) (float64, bool) {
	if fields.NetMetalWeight == nil || fields.GoldRatePerGram == nil {
		return 0, false
	}
	w, r := *fields.NetMetalWeight, *fields.GoldRatePerGram
	if w <= 0 || r <= 0 {
		return 0, false
	}
	return w * r, true
}

// explicitStone returns the stated stone cost when positive, else 0.
func explicitStone(fields *models.BillFields) float64 {
	if fields.StoneCost != nil && *fields.StoneCost > 0 {
		return *fields.StoneCost
	}
	return 0
}

// buildMetadata snapshots the component figures valuation reads back later.
func buildMetadata(category models.Category, fields *models.BillFields) models.Metadata {
	meta := models.Metadata{}

	if fields.NetMetalWeight != nil {
		meta[models.MetaNetMetalWeight] = *fields.NetMetalWeight
	}
	if fields.GoldRatePerGram != nil {
		meta[models.MetaGoldRatePerGram] = *fields.GoldRatePerGram
	}
	if fields.StoneCost != nil && *fields.StoneCost > 0 {
		meta[models.MetaStoneCost] = *fields.StoneCost
	}
	if fields.GrossPrice != nil {
		meta[models.MetaGrossPrice] = *fields.GrossPrice
	}
	if fields.StoneWeight != nil {
		meta["stoneWeight"] = *fields.StoneWeight
	}
	if fields.GrossWeight != nil {
		meta["grossWeight"] = *fields.GrossWeight
	}
	if fields.MakingChargesPerGram != nil {
		meta["makingChargesPerGram"] = *fields.MakingChargesPerGram
	}
	if fields.HallmarkCharges != nil {
		meta["hallmarkCharges"] = *fields.HallmarkCharges
	}
	if gst := fields.GST.Amount(); gst != nil {
		meta["gst"] = *gst
	}
	if fields.Discounts != nil {
		meta["discounts"] = *fields.Discounts
	}
	if fields.FinalPrice != nil {
		meta["finalPrice"] = *fields.FinalPrice
	}
	if fields.GoldPurity != "" {
		meta["goldPurity"] = fields.GoldPurity
	}

	if category == models.CategoryDiamond {
		if fields.DiamondCarat != nil {
			meta["diamondCarat"] = *fields.DiamondCarat
		}
		if fields.DiamondCut != "" {
			meta["diamondCut"] = fields.DiamondCut
		}
		if fields.DiamondClarity != "" {
			meta["diamondClarity"] = fields.DiamondClarity
		}
		if fields.DiamondColor != "" {
			meta["diamondColor"] = fields.DiamondColor
		}
		if fields.DiamondCertificate != "" {
			meta["diamondCertificate"] = fields.DiamondCertificate
		}
	}

	return meta
}
