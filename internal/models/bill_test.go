package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGSTAmount_PrefersTotal(t *testing.T) {
	gst := GSTBreakdown{
		CGST:  floatPtr(450),
		SGST:  floatPtr(450),
		Total: floatPtr(1000),
	}
	amount := gst.Amount()
	require.NotNil(t, amount)
	assert.Equal(t, 1000.0, *amount)
}

func TestGSTAmount_SumsHalvesWhenTotalAbsent(t *testing.T) {
	gst := GSTBreakdown{CGST: floatPtr(450), SGST: floatPtr(450)}
	amount := gst.Amount()
	require.NotNil(t, amount)
	assert.Equal(t, 900.0, *amount)

	// A single stated half still counts
	gst = GSTBreakdown{CGST: floatPtr(450)}
	amount = gst.Amount()
	require.NotNil(t, amount)
	assert.Equal(t, 450.0, *amount)
}

func TestGSTAmount_AbsentWhenNothingStated(t *testing.T) {
	assert.Nil(t, GSTBreakdown{}.Amount())
}

func TestPurityKarat_ParsesFreeText(t *testing.T) {
	tests := []struct {
		text string
		want *int
	}{
		{"22K", intPtr(22)},
		{"18 kt", intPtr(18)},
		{"24", intPtr(24)},
		{"", nil},
		{"hallmarked", nil},
		{"916", nil}, // BIS fineness mark, not a karat tier
	}
	for _, tt := range tests {
		fields := &BillFields{GoldPurity: tt.text}
		got := fields.PurityKarat()
		if tt.want == nil {
			assert.Nil(t, got, "text %q", tt.text)
		} else {
			require.NotNil(t, got, "text %q", tt.text)
			assert.Equal(t, *tt.want, *got)
		}
	}
}

func TestSanitizeAmount_NonFiniteIsAbsent(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	assert.Nil(t, SanitizeAmount(nil))
	assert.Nil(t, SanitizeAmount(&nan))
	assert.Nil(t, SanitizeAmount(&inf))

	v := 42.5
	got := SanitizeAmount(&v)
	require.NotNil(t, got)
	assert.Equal(t, 42.5, *got)
}

func TestSanitize_ClearsNonFiniteFields(t *testing.T) {
	nan := math.NaN()
	fields := &BillFields{
		GoldRatePerGram: &nan,
		GrossPrice:      floatPtr(65000),
	}

	fields.Sanitize()

	assert.Nil(t, fields.GoldRatePerGram)
	require.NotNil(t, fields.GrossPrice)
	assert.Equal(t, 65000.0, *fields.GrossPrice)
}

func TestOrZero(t *testing.T) {
	assert.Equal(t, 0.0, OrZero(nil))
	assert.Equal(t, 500.0, OrZero(floatPtr(500)))
}
