package models

import (
	"fmt"
	"time"
)

// Category is the closed set of investment categories.
type Category string

const (
	CategoryGold    Category = "gold"
	CategoryDiamond Category = "diamond"
)

// Valid reports whether the category is a known variant.
func (c Category) Valid() bool {
	switch c {
	case CategoryGold, CategoryDiamond:
		return true
	}
	return false
}

// Metadata keys written by reconciliation. Valuation reads these back, so
// the same names must be used on both sides.
const (
	MetaStoneCost       = "stoneCost"
	MetaGrossPrice      = "grossPrice"
	MetaGoldRatePerGram = "goldRatePerGram"
	MetaNetMetalWeight  = "netMetalWeight"
)

// Metadata is the normalized bill-component snapshot stored with an
// investment. It retains the original extracted values plus the figures the
// reconciler actually used, so later valuation can recompute consistently.
type Metadata map[string]interface{}

// Float returns a numeric metadata value. JSON decoding and storage both
// produce float64 for numbers; anything else reports absent.
func (m Metadata) Float(key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// PositiveFloat returns a numeric metadata value only when it is > 0.
func (m Metadata) PositiveFloat(key string) (float64, bool) {
	v, ok := m.Float(key)
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

// InvestmentRecord represents one purchased item. TotalAmount is always the
// reconciled final price — raw extracted values never reach this field
// without passing through the reconciler.
type InvestmentRecord struct {
	ID              string    `json:"id"`
	BillID          string    `json:"bill_id,omitempty"`
	Category        Category  `json:"category"`
	Name            string    `json:"name"`
	Vendor          string    `json:"vendor,omitempty"`
	Date            string    `json:"date,omitempty"` // ISO purchase date
	TotalAmount     float64   `json:"total_amount"`
	WeightGrams     *float64  `json:"weight_grams,omitempty"` // net metal weight
	PurityKarat     *int      `json:"purity_karat,omitempty"` // defaults to 24 when absent
	GoldRatePerGram *float64  `json:"gold_rate_per_gram,omitempty"`
	MakingCharges   *float64  `json:"making_charges,omitempty"`
	HallmarkCharges *float64  `json:"hallmark_charges,omitempty"`
	Metadata        Metadata  `json:"metadata,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Validate ensures the record adheres to domain rules.
func (r *InvestmentRecord) Validate() error {
	if !r.Category.Valid() {
		return fmt.Errorf("unknown category %q", r.Category)
	}
	if r.Name == "" {
		return fmt.Errorf("investment name is required")
	}
	if r.TotalAmount <= 0 {
		return fmt.Errorf("total amount must be positive")
	}
	if r.Date != "" {
		if _, err := time.Parse("2006-01-02", r.Date); err != nil {
			return fmt.Errorf("purchase date must be ISO format: %w", err)
		}
	}
	if r.WeightGrams != nil && *r.WeightGrams < 0 {
		return fmt.Errorf("weight cannot be negative")
	}
	return nil
}

// Purity returns the purity tier, defaulting to 24K when absent.
func (r *InvestmentRecord) Purity() int {
	if r.PurityKarat != nil && *r.PurityKarat > 0 {
		return *r.PurityKarat
	}
	return 24
}

// NetWeight returns the net metal weight in grams, falling back to the
// metadata snapshot. Missing weight resolves to 0, not an error: an item
// with no recorded metal weight has no metal value.
func (r *InvestmentRecord) NetWeight() float64 {
	if r.WeightGrams != nil && *r.WeightGrams > 0 {
		return *r.WeightGrams
	}
	if w, ok := r.Metadata.PositiveFloat(MetaNetMetalWeight); ok {
		return w
	}
	return 0
}

// PurchaseDate parses the ISO purchase date. ok is false when the date is
// absent or unparseable; such records are excluded from the XIRR schedule.
func (r *InvestmentRecord) PurchaseDate() (time.Time, bool) {
	if r.Date == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
