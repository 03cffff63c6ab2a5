package models

import (
	"sort"
	"time"
)

// CashFlow is a single dated flow for XIRR. Negative = money out
// (purchases), positive = money in (terminal portfolio value).
type CashFlow struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// SortCashFlows orders flows ascending by date. The solver's year fractions
// are measured from the earliest flow, so ordering is mandatory before NPV
// evaluation.
func SortCashFlows(flows []CashFlow) {
	sort.Slice(flows, func(i, j int) bool {
		return flows[i].Date.Before(flows[j].Date)
	})
}
