package interfaces

import (
	"context"

	"github.com/bobmcallan/aurum/internal/models"
)

// GoldRateClient fetches today's gold rates from the live source.
type GoldRateClient interface {
	// FetchTodayRates returns today's per-tier snapshot. Implementations
	// return an error on network failure or when the page yields no 24K
	// rate; partial tier sets are acceptable (missing tiers are derived
	// during normalization).
	FetchTodayRates(ctx context.Context) (*models.RateSnapshot, error)
}

// GeminiClient generates content via the Gemini API.
type GeminiClient interface {
	// GenerateContent generates a text completion from a text prompt.
	GenerateContent(ctx context.Context, prompt string) (string, error)

	// GenerateWithFile generates a completion from a prompt plus an inline
	// file part (bill image or document page).
	GenerateWithFile(ctx context.Context, prompt, mimeType string, data []byte) (string, error)

	Close() error
}
