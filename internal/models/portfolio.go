package models

// InvestmentInput is the save-time payload: identity fields plus the bill
// component fields (extracted, possibly user-edited) that reconciliation
// consumes. TotalAmount is never taken from the caller directly.
type InvestmentInput struct {
	BillID   string     `json:"bill_id,omitempty"`
	Category Category   `json:"category"`
	Name     string     `json:"name"`
	Vendor   string     `json:"vendor,omitempty"`
	Date     string     `json:"date,omitempty"` // ISO purchase date
	Fields   BillFields `json:"fields"`

	// ConfirmOverride accepts a flagged pricing inconsistency.
	ConfirmOverride bool `json:"confirm_override,omitempty"`
}

// ReconcileOutcome is the result of price reconciliation. When
// NeedsConfirmation is set the caller must decide before persisting;
// reconciliation never silently chooses between conflicting figures.
type ReconcileOutcome struct {
	TotalAmount float64  `json:"total_amount"`
	Metadata    Metadata `json:"metadata"`

	NeedsConfirmation bool    `json:"needs_confirmation,omitempty"`
	ComponentTotal    float64 `json:"component_total,omitempty"` // metal + stone derivation
	Discrepancy       float64 `json:"discrepancy,omitempty"`     // |grossPrice - ComponentTotal|
}

// ItemValuation is one investment's read-time figures. Pointer fields are
// nil when the value is indeterminate (rates unavailable), which is
// distinct from zero.
type ItemValuation struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	Invested      float64  `json:"invested"`
	CurrentValue  *float64 `json:"current_value,omitempty"`
	ReturnAmount  *float64 `json:"return_amount,omitempty"`
	ReturnPercent *float64 `json:"return_percent,omitempty"`
}

// PortfolioSummary aggregates the dashboard figures. Xirr is nil when the
// yield is undefined (fewer than 2 usable cash flows or no bracketed root).
type PortfolioSummary struct {
	TotalInvested      float64         `json:"total_invested"`
	CurrentValue       float64         `json:"current_value"`
	ReturnAmount       float64         `json:"return_amount"`
	ReturnPercent      float64         `json:"return_percent"`
	Xirr               *float64        `json:"xirr,omitempty"`
	ItemCount          int             `json:"item_count"`
	IndeterminateCount int             `json:"indeterminate_count,omitempty"`
	RateDate           string          `json:"rate_date,omitempty"`
	RateProvenance     string          `json:"rate_provenance,omitempty"`
	Items              []ItemValuation `json:"items"`
}
