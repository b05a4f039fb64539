// Package fee prices parking stays against a tiered schedule.
//
// The calculator is a pure function of (schedule, entry, exit). It holds no
// mutable state, performs no I/O and never logs, so one Calculator can be
// shared freely between goroutines.
package fee

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"parking-fee/core/schedule"
	"parking-fee/internal/errors"
)

// Calculator computes parking fees
type Calculator struct {
	clock schedule.ClockFunc
}

// Option configures a Calculator
type Option func(*Calculator)

// WithClock replaces the "HH:MM" parser used for every schedule duration
func WithClock(clock schedule.ClockFunc) Option {
	return func(c *Calculator) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewCalculator creates a calculator using the lenient schedule.ParseClock
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{clock: schedule.ParseClock}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCalculator = NewCalculator()

// Calculate returns the fee for a stay using the default calculator
func Calculate(s *schedule.Schedule, entry, exit time.Time) (decimal.Decimal, error) {
	q, err := defaultCalculator.Calculate(s, entry, exit)
	if err != nil {
		return decimal.Zero, err
	}
	return q.Amount, nil
}

// Calculate prices the stay between entry and exit.
//
// Instants are compared at millisecond resolution. An exit before the entry is
// an INVALID_TIME_RANGE error and a recurring tier with a non-positive interval
// is an INVALID_SCHEDULE error; both are reported before any arithmetic.
func (c *Calculator) Calculate(s *schedule.Schedule, entry, exit time.Time) (*Quote, error) {
	if s == nil {
		return nil, errors.Input("schedule is required")
	}

	entry = entry.Truncate(time.Millisecond)
	exit = exit.Truncate(time.Millisecond)
	if exit.Before(entry) {
		return nil, errors.InvalidTimeRange("exit is before entry").
			WithContext("entry", entry.Format(time.RFC3339Nano)).
			WithContext("exit", exit.Format(time.RFC3339Nano))
	}
	if err := s.ValidateWith(c.clock); err != nil {
		return nil, err
	}

	tolerance := c.clock(s.InitialTolerance)
	billableFrom := entry.Add(time.Duration(tolerance) * time.Minute)

	q := &Quote{
		TableID:          s.ID,
		Amount:           decimal.Zero,
		ToleranceMinutes: tolerance,
	}
	if !exit.After(billableFrom) {
		q.WithinTolerance = true
		return q, nil
	}

	stay := int(exit.Sub(billableFrom) / time.Minute)
	q.BillableMinutes = stay

	total := c.tiers(s, stay, q)
	total = c.capped(s, stay, total, q)

	q.Amount = total
	return q, nil
}

// tiers applies the until and recurring tiers to a billable stay
func (c *Calculator) tiers(s *schedule.Schedule, stay int, q *Quote) decimal.Decimal {
	switch {
	case s.Until != nil:
		until := c.clock(s.Until.Duration)
		total := s.Until.Value
		q.Lines = append(q.Lines, Line{
			Tier:    TierUntil,
			Formula: fmt.Sprintf("flat %s up to %d min", s.Until.Value, until),
			Amount:  s.Until.Value,
		})
		if stay <= until || s.Recurring == nil {
			return total
		}
		excess := stay - until
		if excess > 0 {
			total = total.Add(c.recurring(s.Recurring, excess, q))
		}
		return total

	case s.Recurring != nil:
		return c.recurring(s.Recurring, stay, q)

	default:
		return decimal.Zero
	}
}

// recurring charges one Value per started interval of minutes
func (c *Calculator) recurring(r *schedule.RecurringTier, minutes int, q *Quote) decimal.Decimal {
	every := c.clock(r.Every)
	periods := ceilDiv(minutes, every)
	amount := r.Value.Mul(decimal.NewFromInt(int64(periods)))

	q.Lines = append(q.Lines, Line{
		Tier:    TierRecurring,
		Formula: fmt.Sprintf("ceil(%d min / %d min) x %s", minutes, every, r.Value),
		Periods: periods,
		Amount:  amount,
	})
	return amount
}

// capped applies the maximum charge. The cap only engages while the billable
// stay is within the cap period; longer stays keep the uncapped total.
// TODO: confirm with pricing owners whether the period comparison should be reversed.
func (c *Calculator) capped(s *schedule.Schedule, stay int, total decimal.Decimal, q *Quote) decimal.Decimal {
	if s.MaxCharge == nil {
		return total
	}
	period := c.clock(s.MaxCharge.Period)
	if stay > period || !s.MaxCharge.Value.LessThan(total) {
		return total
	}

	q.Capped = true
	q.Lines = append(q.Lines, Line{
		Tier:    TierMaxCharge,
		Formula: fmt.Sprintf("min(%s, %s) within %d min", total, s.MaxCharge.Value, period),
		Amount:  s.MaxCharge.Value.Sub(total),
	})
	return s.MaxCharge.Value
}

// ceilDiv is n/d rounded up, for n >= 0 and d > 0
func ceilDiv(n, d int) int {
	q := n / d
	if n%d > 0 {
		q++
	}
	return q
}
