// Package schedule defines price tables and the services that supply them.
//
// A Schedule is read-only once built. Each optional pricing tier is a single
// pointer so that "tier configured" is one nil check rather than a set of
// independently optional fields.
package schedule

import (
	"sort"

	"github.com/shopspring/decimal"

	"parking-fee/internal/errors"
)

// Schedule is a tiered price table applied to a parking stay
type Schedule struct {
	// ID identifies the table to providers and callers
	ID string `json:"id"`

	// Name is a human-readable label
	Name string `json:"name"`

	// InitialTolerance is the grace period ("HH:MM") during which no charge accrues
	InitialTolerance string `json:"initial_tolerance"`

	// Until is the flat charge for the first part of the stay
	Until *UntilTier `json:"until,omitempty"`

	// Recurring charges per started interval
	Recurring *RecurringTier `json:"recurring,omitempty"`

	// MaxCharge caps the total for stays within its period
	MaxCharge *MaxChargeTier `json:"max_charge,omitempty"`
}

// UntilTier charges Value for stays up to Duration past the tolerance
type UntilTier struct {
	Duration string          `json:"duration"`
	Value    decimal.Decimal `json:"value"`
}

// RecurringTier charges Value per Every interval or fraction thereof.
// From documents where the tier starts; it does not take part in the arithmetic.
type RecurringTier struct {
	From  string          `json:"from"`
	Every string          `json:"every"`
	Value decimal.Decimal `json:"value"`
}

// MaxChargeTier limits the total to Value when the billable stay is at most Period
type MaxChargeTier struct {
	Period string          `json:"period"`
	Value  decimal.Decimal `json:"value"`
}

// Durations returns every configured "HH:MM" field keyed by its file attribute path
func (s *Schedule) Durations() map[string]string {
	d := map[string]string{"initial_tolerance": s.InitialTolerance}
	if s.Until != nil {
		d["until.duration"] = s.Until.Duration
	}
	if s.Recurring != nil {
		d["recurring.from"] = s.Recurring.From
		d["recurring.every"] = s.Recurring.Every
	}
	if s.MaxCharge != nil {
		d["max_charge.period"] = s.MaxCharge.Period
	}
	return d
}

// Validate checks the schedule using the lenient clock parser
func (s *Schedule) Validate() error {
	return s.ValidateWith(ParseClock)
}

// ValidateWith checks that the schedule can be evaluated when durations are
// read with clock. A recurring tier whose interval is not positive is rejected.
func (s *Schedule) ValidateWith(clock ClockFunc) error {
	if s == nil {
		return errors.Input("schedule is nil")
	}
	if s.Recurring != nil {
		if every := clock(s.Recurring.Every); every <= 0 {
			return errors.InvalidSchedule(s.ID, "recurring interval must be positive").
				WithContext("every", s.Recurring.Every).
				WithContext("every_minutes", every)
		}
	}
	return nil
}

// Strict returns an error for the first configured duration, in field order,
// that ParseClockStrict rejects
func (s *Schedule) Strict() error {
	durations := s.Durations()
	fields := make([]string, 0, len(durations))
	for field := range durations {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if _, err := ParseClockStrict(durations[field]); err != nil {
			return errors.Wrapf(errors.TypeInvalidSchedule, err, "price table %s: %s", s.ID, field).
				WithContext("table_id", s.ID)
		}
	}
	return nil
}
