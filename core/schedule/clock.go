package schedule

import (
	"strconv"
	"strings"

	"parking-fee/internal/errors"
)

// ClockFunc converts an "HH:MM" string into whole minutes.
type ClockFunc func(s string) int

// ParseClock converts "HH:MM" into hours*60 + minutes.
//
// Malformed input degrades instead of failing: a blank string, or one that does
// not split into exactly two colon-separated parts, yields 0, and a part that is
// not an integer counts as 0 ("12:xx" is 720). Negative parts are used as-is.
func ParseClock(s string) int {
	if strings.TrimSpace(s) == "" {
		return 0
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0
	}
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return hours*60 + minutes
}

// ParseClockStrict is ParseClock without the leniency: anything other than two
// integer parts is an input error. A blank string is still zero minutes.
func ParseClockStrict(s string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, errors.Newf(errors.TypeInput, "duration %q is not in HH:MM form", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, errors.Wrapf(errors.TypeInput, err, "duration %q has invalid hours", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, errors.Wrapf(errors.TypeInput, err, "duration %q has invalid minutes", s)
	}
	return hours*60 + minutes, nil
}
