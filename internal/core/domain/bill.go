package domain

import (
	"errors"
	"time"
)

var ErrBillNotFound = errors.New("bill not found")
var ErrInvalidUnits = errors.New("units consumed must be at least 1")

// Tiered rate table. Boundaries at exactly 100 and exactly 300 units are
// priced in the cheaper band.
const (
	tier1Limit = 100.0
	tier2Limit = 300.0
	tier1Rate  = 3.50
	tier2Rate  = 5.00
	tier3Rate  = 7.00
)

// Bill is a single billing event. Bills are never mutated; they disappear
// only when their customer is deleted.
type Bill struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customer_id"`
	UnitsConsumed float64   `json:"units_consumed"`
	Amount        float64   `json:"amount"`
	BillDate      time.Time `json:"bill_date"`
}

// CalculateAmount maps consumed units to a monetary amount using the tiered
// rate table. Total over units >= 0 and monotonically non-decreasing.
func CalculateAmount(units float64) float64 {
	switch {
	case units <= tier1Limit:
		return units * tier1Rate
	case units <= tier2Limit:
		return tier1Limit*tier1Rate + (units-tier1Limit)*tier2Rate
	default:
		return tier1Limit*tier1Rate + (tier2Limit-tier1Limit)*tier2Rate + (units-tier2Limit)*tier3Rate
	}
}
