// Package models defines data structures for Aurum
package models

import (
	"fmt"
	"math"
	"time"
)

// KaratTiers lists the purity tiers carried by every rate snapshot,
// highest first. 24K is the reference tier all others derive from.
var KaratTiers = []int{24, 22, 18, 14, 9}

// ProvenanceLive marks a snapshot fetched from the live rate source.
// ProvenanceManual marks a user-entered override.
const (
	ProvenanceLive   = "live"
	ProvenanceManual = "manual"
)

// FallbackProvenance returns the provenance tag for a snapshot recovered
// from the historical series, e.g. "fallback:2024-01-02".
func FallbackProvenance(sourceDate string) string {
	return "fallback:" + sourceDate
}

// Round2 rounds an INR amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RateSnapshot is one day's gold rates in INR per gram, keyed by karat tier.
type RateSnapshot struct {
	Date       string          `json:"date"` // ISO capture date
	CapturedAt time.Time       `json:"captured_at"`
	Source     string          `json:"source"` // source URL or "manual"
	Provenance string          `json:"provenance"`
	PerGram    map[int]float64 `json:"per_gram"`
}

// IsStructurallyEmpty reports whether the snapshot carries no usable tier.
// Such a snapshot is treated the same as a failed fetch.
func (s *RateSnapshot) IsStructurallyEmpty() bool {
	if s == nil {
		return true
	}
	for _, rate := range s.PerGram {
		if rate > 0 {
			return false
		}
	}
	return true
}

// Normalize fills missing lower tiers from the 24K rate using the linear
// purity formula rate24 * karat / 24, rounded to 2 decimals. Tiers already
// present (non-zero) are left untouched. A snapshot without a 24K rate is
// returned as-is; callers must check IsStructurallyEmpty first.
func (s *RateSnapshot) Normalize() {
	if s.PerGram == nil {
		s.PerGram = make(map[int]float64)
	}

	rate24 := s.PerGram[24]
	if rate24 <= 0 {
		return
	}

	for _, karat := range KaratTiers {
		if s.PerGram[karat] > 0 {
			continue
		}
		s.PerGram[karat] = Round2(rate24 * float64(karat) / 24)
	}
}

// Rate returns the per-gram rate for the requested karat tier. A missing
// tier falls back to the 24K rate; if 24K is also missing, ok is false and
// the rate is indeterminate.
func (s *RateSnapshot) Rate(karat int) (float64, bool) {
	if s == nil {
		return 0, false
	}
	if rate, ok := s.PerGram[karat]; ok && rate > 0 {
		return rate, true
	}
	if rate, ok := s.PerGram[24]; ok && rate > 0 {
		return rate, true
	}
	return 0, false
}

// Validate checks the snapshot for storage.
func (s *RateSnapshot) Validate() error {
	if s.Date == "" {
		return fmt.Errorf("rate snapshot date is required")
	}
	if _, err := time.Parse("2006-01-02", s.Date); err != nil {
		return fmt.Errorf("rate snapshot date must be ISO format: %w", err)
	}
	if s.IsStructurallyEmpty() {
		return fmt.Errorf("rate snapshot has no usable tiers")
	}
	return nil
}
