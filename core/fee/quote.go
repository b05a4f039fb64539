package fee

import "github.com/shopspring/decimal"

// Tier names the pricing rule that produced a quote line
type Tier string

const (
	TierUntil     Tier = "until"
	TierRecurring Tier = "recurring"
	TierMaxCharge Tier = "max_charge"
)

// Quote is the result of pricing one stay
type Quote struct {
	// TableID is the schedule the stay was priced against
	TableID string `json:"table_id"`

	// Amount is the fee owed
	Amount decimal.Decimal `json:"amount"`

	// ToleranceMinutes is the grace period that was applied
	ToleranceMinutes int `json:"tolerance_minutes"`

	// BillableMinutes is the stay past the tolerance, floored to whole minutes
	BillableMinutes int `json:"billable_minutes"`

	// WithinTolerance is set when the stay ended inside the grace period
	WithinTolerance bool `json:"within_tolerance"`

	// Capped is set when the maximum charge lowered the amount
	Capped bool `json:"capped"`

	// Lines explains how Amount was built, in evaluation order
	Lines []Line `json:"lines,omitempty"`
}

// Line is one tier's contribution to a quote. A max_charge line carries the
// (negative) adjustment it made.
type Line struct {
	Tier    Tier            `json:"tier"`
	Formula string          `json:"formula"`
	Periods int             `json:"periods,omitempty"`
	Amount  decimal.Decimal `json:"amount"`
}
