// Package rates resolves the authoritative gold rate for valuation.
package rates

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bobmcallan/aurum/internal/clients/goodreturns"
	"github.com/bobmcallan/aurum/internal/common"
	"github.com/bobmcallan/aurum/internal/interfaces"
	"github.com/bobmcallan/aurum/internal/models"
)

// ErrRatesUnavailable means neither the live source nor the historical
// series could produce a usable snapshot. Dependent valuations must treat
// affected figures as indeterminate, not zero.
var ErrRatesUnavailable = errors.New("no live or historical gold rates available")

// Service caches one resolved snapshot per session. The live source is hit
// at most once until the cache is refreshed by the daily capture or a
// manual save.
type Service struct {
	client interfaces.GoldRateClient
	store  interfaces.RateStore
	logger *common.Logger

	mu       sync.Mutex
	snapshot *models.RateSnapshot
}

// NewService creates a new rate service
func NewService(client interfaces.GoldRateClient, store interfaces.RateStore, logger *common.Logger) *Service {
	return &Service{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Current returns the session snapshot, resolving it on first use: live
// fetch, normalized and persisted, falling back to the most recent stored
// snapshot when the live source fails or returns nothing usable.
func (s *Service) Current(ctx context.Context) (*models.RateSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot != nil {
		return s.snapshot, nil
	}

	snapshot, err := s.resolve(ctx)
	if err != nil {
		return nil, err
	}
	s.snapshot = snapshot
	return snapshot, nil
}

// resolve runs the live-then-fallback chain. Caller holds the lock.
func (s *Service) resolve(ctx context.Context) (*models.RateSnapshot, error) {
	live, err := s.client.FetchTodayRates(ctx)
	if err == nil && !live.IsStructurallyEmpty() {
		live.Normalize()
		if storeErr := s.store.Upsert(ctx, live); storeErr != nil {
			s.logger.Warn().Err(storeErr).Msg("Failed to persist live rate snapshot")
		}
		s.logger.Info().
			Str("date", live.Date).
			Float64("rate_24k", live.PerGram[24]).
			Msg("Resolved live gold rates")
		return live, nil
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("Live rate fetch failed, trying history")
	} else {
		s.logger.Warn().Msg("Live rate snapshot empty, trying history")
	}

	latest, histErr := s.store.Latest(ctx)
	if histErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrRatesUnavailable, histErr)
	}

	fallback := &models.RateSnapshot{
		Date:       latest.Date,
		CapturedAt: latest.CapturedAt,
		Source:     latest.Source,
		Provenance: models.FallbackProvenance(latest.Date),
		PerGram:    make(map[int]float64, len(latest.PerGram)),
	}
	for karat, rate := range latest.PerGram {
		fallback.PerGram[karat] = rate
	}
	fallback.Normalize()
	if fallback.IsStructurallyEmpty() {
		return nil, ErrRatesUnavailable
	}

	s.logger.Info().
		Str("source_date", latest.Date).
		Msg("Resolved gold rates from history fallback")
	return fallback, nil
}

// Resolve returns the per-gram rate for a purity tier from the current
// snapshot, falling back tier to 24K inside the snapshot.
func (s *Service) Resolve(ctx context.Context, karat int) (float64, error) {
	snapshot, err := s.Current(ctx)
	if err != nil {
		return 0, err
	}
	rate, ok := snapshot.Rate(karat)
	if !ok {
		return 0, ErrRatesUnavailable
	}
	return rate, nil
}

// CaptureDaily fetches and stores today's snapshot, refreshing the session
// cache on success. Used by the scheduler and the manual refresh endpoint.
func (s *Service) CaptureDaily(ctx context.Context) error {
	live, err := s.client.FetchTodayRates(ctx)
	if err != nil {
		return fmt.Errorf("daily rate capture failed: %w", err)
	}
	if live.IsStructurallyEmpty() {
		return fmt.Errorf("daily rate capture returned no usable tiers")
	}
	live.Normalize()

	if err := s.store.Upsert(ctx, live); err != nil {
		return err
	}

	s.mu.Lock()
	s.snapshot = live
	s.mu.Unlock()

	s.logger.Info().
		Str("date", live.Date).
		Float64("rate_24k", live.PerGram[24]).
		Msg("Captured daily gold rates")
	return nil
}

// SaveManual stores a user-entered snapshot for today. The 24K tier is
// required; missing lower tiers are derived.
func (s *Service) SaveManual(ctx context.Context, perGram map[int]float64) (*models.RateSnapshot, error) {
	if perGram[24] <= 0 {
		return nil, fmt.Errorf("manual rates require a positive 24K rate")
	}

	now := time.Now().In(goodreturns.IST)
	snapshot := &models.RateSnapshot{
		Date:       now.Format("2006-01-02"),
		CapturedAt: now,
		Source:     "manual",
		Provenance: models.ProvenanceManual,
		PerGram:    make(map[int]float64, len(perGram)),
	}
	for karat, rate := range perGram {
		if rate > 0 {
			snapshot.PerGram[karat] = rate
		}
	}
	snapshot.Normalize()

	if err := s.store.Upsert(ctx, snapshot); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.logger.Info().Str("date", snapshot.Date).Msg("Saved manual gold rates")
	return snapshot, nil
}

// History returns stored snapshots, most recent first.
func (s *Service) History(ctx context.Context) ([]*models.RateSnapshot, error) {
	return s.store.ListDesc(ctx)
}

// HistoryChart renders the stored history as a PNG line chart.
func (s *Service) HistoryChart(ctx context.Context) ([]byte, error) {
	snapshots, err := s.store.ListDesc(ctx)
	if err != nil {
		return nil, err
	}
	return RenderHistoryChart(snapshots)
}
