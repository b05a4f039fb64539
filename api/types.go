// Package api - request and response bodies
package api

import (
	"github.com/shopspring/decimal"

	"parking-fee/core/fee"
	"parking-fee/core/schedule"
)

// QuoteRequest asks for the fee of one stay
type QuoteRequest struct {
	TableID string      `json:"table_id"`
	Entry   fee.Instant `json:"entry"`
	Exit    fee.Instant `json:"exit"`
}

// QuoteResponse is a priced stay
type QuoteResponse struct {
	ID               string          `json:"id"`
	TableID          string          `json:"table_id"`
	Currency         string          `json:"currency"`
	Amount           decimal.Decimal `json:"amount"`
	Entry            fee.Instant     `json:"entry"`
	Exit             fee.Instant     `json:"exit"`
	ToleranceMinutes int             `json:"tolerance_minutes"`
	BillableMinutes  int             `json:"billable_minutes"`
	WithinTolerance  bool            `json:"within_tolerance"`
	Capped           bool            `json:"capped"`
	Lines            []fee.Line      `json:"lines"`
}

// TablesResponse lists the loaded price tables
type TablesResponse struct {
	Tables []*schedule.Schedule `json:"tables"`
	Count  int                  `json:"count"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
