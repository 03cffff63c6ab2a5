package interfaces

import (
	"context"

	"github.com/bobmcallan/aurum/internal/models"
)

// RateService resolves the authoritative gold rate for valuation.
type RateService interface {
	// Current returns the session snapshot, fetching and normalizing the
	// live feed on first use and falling back to the most recent
	// historical snapshot when the live source is unavailable.
	Current(ctx context.Context) (*models.RateSnapshot, error)

	// Resolve returns the per-gram rate for a purity tier from the
	// current snapshot.
	Resolve(ctx context.Context, karat int) (float64, error)

	// CaptureDaily fetches the live feed and stores today's snapshot.
	CaptureDaily(ctx context.Context) error

	// SaveManual stores a manual override snapshot for today.
	SaveManual(ctx context.Context, perGram map[int]float64) (*models.RateSnapshot, error)

	// History returns stored snapshots, most recent first.
	History(ctx context.Context) ([]*models.RateSnapshot, error)

	// HistoryChart renders the rate history as a PNG line chart.
	HistoryChart(ctx context.Context) ([]byte, error)
}

// BillService ingests uploaded bills and runs vision extraction.
type BillService interface {
	Extract(ctx context.Context, category models.Category, fileName string, data []byte) (*models.BillRecord, error)
	Get(ctx context.Context, id string) (*models.BillRecord, error)
}

// InvestmentService owns the investment lifecycle: reconciliation at save
// time, CRUD, and portfolio valuation at read time.
type InvestmentService interface {
	// Preview runs reconciliation without persisting, surfacing any
	// needs-confirmation outcome to the caller.
	Preview(ctx context.Context, input *models.InvestmentInput) (*models.ReconcileOutcome, error)

	// Create reconciles and persists a new investment. A flagged pricing
	// inconsistency is rejected unless input.ConfirmOverride is set.
	Create(ctx context.Context, input *models.InvestmentInput) (*models.InvestmentRecord, error)

	List(ctx context.Context) ([]*models.InvestmentRecord, error)
	Get(ctx context.Context, id string) (*models.InvestmentRecord, error)
	Delete(ctx context.Context, id string) error

	// Summary values the whole portfolio against the current rate
	// snapshot and solves the portfolio XIRR.
	Summary(ctx context.Context) (*models.PortfolioSummary, error)
}
