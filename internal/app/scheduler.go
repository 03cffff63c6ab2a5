package app

import (
	"context"
	"time"

	"github.com/bobmcallan/aurum/internal/clients/goodreturns"
	"github.com/bobmcallan/aurum/internal/common"
	"github.com/bobmcallan/aurum/internal/interfaces"
)

// startRateScheduler captures the gold rate once per day at the configured
// IST time. Retail rates publish on IST mornings, so the default 10:30
// capture lands after the day's rate is up.
func startRateScheduler(ctx context.Context, rateService interfaces.RateService, config *common.Config, logger *common.Logger) {
	for {
		wait := untilNextCapture(time.Now().In(goodreturns.IST), config.Rates.CaptureHour, config.Rates.CaptureMinute)
		logger.Info().Dur("wait", wait).Msg("Rate scheduler: next capture scheduled")

		select {
		case <-ctx.Done():
			logger.Info().Msg("Rate scheduler: stopped")
			return
		case <-time.After(wait):
		}

		captureCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		if err := rateService.CaptureDaily(captureCtx); err != nil {
			logger.Warn().Err(err).Msg("Rate scheduler: daily capture failed")
		}
		cancel()
	}
}

// untilNextCapture computes the wait until the next hh:mm occurrence in
// now's location. If today's slot has passed, the capture moves to
// tomorrow.
func untilNextCapture(now time.Time, hour, minute int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
