package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking-fee/internal/errors"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"00:15", 15},
		{"01:00", 60},
		{"02:30", 150},
		{"24:00", 1440},
		{"", 0},
		{"   ", 0},
		{"15", 0},
		{"01:00:00", 0},
		{"12:xx", 720},
		{"xx:30", 30},
		{"ab:cd", 0},
		{"-1:30", -30},
		{"00:-5", -5},
		{" 1:00", 0},
		{"+1:05", 65},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseClock(tt.input))
		})
	}
}

func TestParseClockStrict(t *testing.T) {
	minutes, err := ParseClockStrict("02:30")
	require.NoError(t, err)
	assert.Equal(t, 150, minutes)

	minutes, err = ParseClockStrict("")
	require.NoError(t, err)
	assert.Zero(t, minutes)

	for _, bad := range []string{"12:xx", "15", "1:2:3", "h:30"} {
		_, err := ParseClockStrict(bad)
		assert.True(t, errors.IsType(err, errors.TypeInput), "expected input error for %q", bad)
	}
}
