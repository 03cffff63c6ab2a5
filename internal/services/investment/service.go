// Package investment owns the investment lifecycle: reconciliation at save
// time, CRUD, and portfolio valuation at read time.
package investment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/aurum/internal/common"
	"github.com/bobmcallan/aurum/internal/interfaces"
	"github.com/bobmcallan/aurum/internal/models"
	"github.com/bobmcallan/aurum/internal/services/rates"
	"github.com/bobmcallan/aurum/internal/services/reconcile"
	"github.com/bobmcallan/aurum/internal/services/valuation"
)

// ConfirmationRequiredError rejects a create whose reconciliation flagged a
// pricing inconsistency the caller has not confirmed. The outcome carries
// the discrepancy for the caller's decision.
type ConfirmationRequiredError struct {
	Outcome *models.ReconcileOutcome
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("stated gross price differs from components by %.2f, confirmation required", e.Outcome.Discrepancy)
}

// Service orchestrates reconciliation, storage, and valuation.
type Service struct {
	store      interfaces.InvestmentStore
	rates      interfaces.RateService
	reconciler *reconcile.Service
	valuator   *valuation.Service
	logger     *common.Logger
}

// NewService creates a new investment service
func NewService(store interfaces.InvestmentStore, rateService interfaces.RateService, reconciler *reconcile.Service, valuator *valuation.Service, logger *common.Logger) *Service {
	return &Service{
		store:      store,
		rates:      rateService,
		reconciler: reconciler,
		valuator:   valuator,
		logger:     logger,
	}
}

// Preview runs reconciliation without persisting, so the caller can show
// the derived total and any needs-confirmation outcome before saving.
func (s *Service) Preview(ctx context.Context, input *models.InvestmentInput) (*models.ReconcileOutcome, error) {
	if !input.Category.Valid() {
		return nil, fmt.Errorf("unknown category %q", input.Category)
	}

	fields := input.Fields
	s.backfillRate(ctx, input.Category, &fields)
	return s.reconciler.Reconcile(input.Category, &fields)
}

// backfillRate fills a missing bill gold rate from the current snapshot so
// component-only gold bills can still reconcile. Best effort: unavailable
// rates just leave the field absent.
func (s *Service) backfillRate(ctx context.Context, category models.Category, fields *models.BillFields) {
	if fields.GoldRatePerGram != nil || fields.NetMetalWeight == nil {
		return
	}

	karat := 24
	if k := fields.PurityKarat(); k != nil {
		karat = *k
	}
	rate, err := s.rates.Resolve(ctx, karat)
	if err != nil {
		if !errors.Is(err, rates.ErrRatesUnavailable) {
			s.logger.Warn().Err(err).Msg("Rate backfill failed")
		}
		return
	}

	fields.GoldRatePerGram = &rate
	s.logger.Debug().
		Int("karat", karat).
		Float64("rate", rate).
		Str("category", string(category)).
		Msg("Backfilled bill gold rate from current snapshot")
}

// Create reconciles and persists a new investment. A flagged pricing
// inconsistency is rejected with ConfirmationRequiredError unless the
// input carries ConfirmOverride.
func (s *Service) Create(ctx context.Context, input *models.InvestmentInput) (*models.InvestmentRecord, error) {
	if input.Name == "" {
		input.Name = input.Fields.ProductName
	}
	if input.Vendor == "" {
		input.Vendor = input.Fields.Vendor
	}
	if input.Date == "" {
		input.Date = input.Fields.PurchaseDate
	}

	outcome, err := s.Preview(ctx, input)
	if err != nil {
		return nil, err
	}
	if outcome.NeedsConfirmation && !input.ConfirmOverride {
		return nil, &ConfirmationRequiredError{Outcome: outcome}
	}

	record := &models.InvestmentRecord{
		ID:              uuid.New().String(),
		BillID:          input.BillID,
		Category:        input.Category,
		Name:            input.Name,
		Vendor:          input.Vendor,
		Date:            input.Date,
		TotalAmount:     outcome.TotalAmount,
		WeightGrams:     models.SanitizeAmount(input.Fields.NetMetalWeight),
		PurityKarat:     input.Fields.PurityKarat(),
		GoldRatePerGram: models.SanitizeAmount(input.Fields.GoldRatePerGram),
		HallmarkCharges: models.SanitizeAmount(input.Fields.HallmarkCharges),
		Metadata:        outcome.Metadata,
	}
	if record.WeightGrams != nil && input.Fields.MakingChargesPerGram != nil {
		making := models.Round2(*record.WeightGrams * *input.Fields.MakingChargesPerGram)
		record.MakingCharges = &making
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("id", record.ID).
		Str("name", record.Name).
		Str("category", string(record.Category)).
		Float64("total", record.TotalAmount).
		Msg("Investment created")

	return record, nil
}

// List returns all investments, newest first.
func (s *Service) List(ctx context.Context) ([]*models.InvestmentRecord, error) {
	return s.store.List(ctx)
}

// Get returns one investment by id.
func (s *Service) Get(ctx context.Context, id string) (*models.InvestmentRecord, error) {
	return s.store.Get(ctx, id)
}

// Delete removes an investment by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("Investment deleted")
	return nil
}

// Summary values the whole portfolio against the current snapshot. When no
// rates resolve at all, every item is reported indeterminate rather than
// failing the summary.
func (s *Service) Summary(ctx context.Context) (*models.PortfolioSummary, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.rates.Current(ctx)
	if err != nil {
		if !errors.Is(err, rates.ErrRatesUnavailable) {
			return nil, err
		}
		s.logger.Warn().Msg("Rates unavailable, portfolio values indeterminate")
		snapshot = nil
	}

	return s.valuator.Summarize(records, snapshot, time.Now()), nil
}
