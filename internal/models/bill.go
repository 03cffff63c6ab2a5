package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// GSTBreakdown mirrors the gst block of the extraction schema. Indian bills
// state GST either as a single total or split into CGST + SGST halves.
type GSTBreakdown struct {
	CGST  *float64 `json:"cgst,omitempty"`
	SGST  *float64 `json:"sgst,omitempty"`
	Total *float64 `json:"total,omitempty"`
}

// Amount returns the effective GST amount: the stated total when present,
// else the sum of CGST and SGST, else nil.
func (g GSTBreakdown) Amount() *float64 {
	if g.Total != nil {
		return SanitizeAmount(g.Total)
	}
	if g.CGST == nil && g.SGST == nil {
		return nil
	}
	sum := 0.0
	if g.CGST != nil {
		sum += *g.CGST
	}
	if g.SGST != nil {
		sum += *g.SGST
	}
	return SanitizeAmount(&sum)
}

// BillFields is the structured field set produced by bill extraction.
// Numeric fields are pointers: absent is not the same as zero, and the
// reconciliation formulas decide per field which of the two applies.
type BillFields struct {
	Vendor               string       `json:"vendor,omitempty"`
	ProductName          string       `json:"productName,omitempty"`
	PurchaseDate         string       `json:"purchaseDate,omitempty"`
	NetMetalWeight       *float64     `json:"netMetalWeight,omitempty"`
	StoneWeight          *float64     `json:"stoneWeight,omitempty"`
	GrossWeight          *float64     `json:"grossWeight,omitempty"`
	GoldRatePerGram      *float64     `json:"goldRatePerGram,omitempty"`
	MakingChargesPerGram *float64     `json:"makingChargesPerGram,omitempty"`
	HallmarkCharges      *float64     `json:"hallmarkCharges,omitempty"`
	StoneCost            *float64     `json:"stoneCost,omitempty"`
	GrossPrice           *float64     `json:"grossPrice,omitempty"`
	GST                  GSTBreakdown `json:"gst,omitempty"`
	Discounts            *float64     `json:"discounts,omitempty"`
	FinalPrice           *float64     `json:"finalPrice,omitempty"`
	GoldPurity           string       `json:"goldPurity,omitempty"`

	// Diamond-only attributes
	DiamondCarat       *float64 `json:"diamondCarat,omitempty"`
	DiamondCut         string   `json:"diamondCut,omitempty"`
	DiamondClarity     string   `json:"diamondClarity,omitempty"`
	DiamondColor       string   `json:"diamondColor,omitempty"`
	DiamondCertificate string   `json:"diamondCertificate,omitempty"`
}

// PurityKarat parses the purity tier out of the free-text goldPurity field
// ("22K", "22 kt", "916" hallmark is not handled). nil when unparseable.
func (f *BillFields) PurityKarat() *int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, f.GoldPurity)
	if digits == "" {
		return nil
	}
	k, err := strconv.Atoi(digits)
	if err != nil || k <= 0 || k > 24 {
		return nil
	}
	return &k
}

// Sanitize drops non-finite numeric values, treating them as absent.
func (f *BillFields) Sanitize() {
	f.NetMetalWeight = SanitizeAmount(f.NetMetalWeight)
	f.StoneWeight = SanitizeAmount(f.StoneWeight)
	f.GrossWeight = SanitizeAmount(f.GrossWeight)
	f.GoldRatePerGram = SanitizeAmount(f.GoldRatePerGram)
	f.MakingChargesPerGram = SanitizeAmount(f.MakingChargesPerGram)
	f.HallmarkCharges = SanitizeAmount(f.HallmarkCharges)
	f.StoneCost = SanitizeAmount(f.StoneCost)
	f.GrossPrice = SanitizeAmount(f.GrossPrice)
	f.GST.CGST = SanitizeAmount(f.GST.CGST)
	f.GST.SGST = SanitizeAmount(f.GST.SGST)
	f.GST.Total = SanitizeAmount(f.GST.Total)
	f.Discounts = SanitizeAmount(f.Discounts)
	f.FinalPrice = SanitizeAmount(f.FinalPrice)
	f.DiamondCarat = SanitizeAmount(f.DiamondCarat)
}

// SanitizeAmount returns nil for nil or non-finite values, otherwise a copy
// of the pointer. A field that failed to parse is absent, never zero.
func SanitizeAmount(v *float64) *float64 {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return v
}

// OrZero dereferences an optional amount, substituting 0 when absent. Only
// use for fields the formulas explicitly default to zero (making charges,
// hallmark charges, GST, discounts).
func OrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// BillRecord stores one uploaded bill and its extraction result.
type BillRecord struct {
	ID        string     `json:"id"`
	Category  Category   `json:"category"`
	FileName  string     `json:"file_name"`
	Extracted BillFields `json:"extracted"`
	CreatedAt time.Time  `json:"created_at"`
}
