package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bobmcallan/aurum/internal/clients/goodreturns"
)

func TestUntilNextCapture(t *testing.T) {
	ist := goodreturns.IST

	// Before today's slot: wait until 10:30 today
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, ist)
	assert.Equal(t, 90*time.Minute, untilNextCapture(now, 10, 30))

	// After today's slot: wait until 10:30 tomorrow
	now = time.Date(2025, 6, 1, 11, 0, 0, 0, ist)
	assert.Equal(t, 23*time.Hour+30*time.Minute, untilNextCapture(now, 10, 30))

	// Exactly on the slot: schedule tomorrow, not a zero wait
	now = time.Date(2025, 6, 1, 10, 30, 0, 0, ist)
	assert.Equal(t, 24*time.Hour, untilNextCapture(now, 10, 30))
}
