package fee

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking-fee/internal/errors"
)

func TestParseInstant(t *testing.T) {
	got, err := ParseInstant("1000000")
	require.NoError(t, err)
	assert.True(t, time.UnixMilli(1000000).Equal(got))

	got, err = ParseInstant("2024-03-01T08:30:00-03:00")
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 3, 1, 11, 30, 0, 0, time.UTC).Equal(got))

	for _, bad := range []string{"", "  ", "yesterday", "2024-03-01"} {
		_, err := ParseInstant(bad)
		assert.True(t, errors.IsType(err, errors.TypeInput), "expected input error for %q", bad)
	}
}

func TestInstantJSON(t *testing.T) {
	var body struct {
		Entry Instant `json:"entry"`
		Exit  Instant `json:"exit"`
	}
	err := json.Unmarshal([]byte(`{"entry": 1000000, "exit": "1970-01-01T00:46:40Z"}`), &body)
	require.NoError(t, err)
	assert.True(t, body.Entry.Equal(time.UnixMilli(1000000)))
	assert.True(t, body.Exit.Equal(time.UnixMilli(2800000)))

	out, err := json.Marshal(body.Entry)
	require.NoError(t, err)
	assert.JSONEq(t, `"1970-01-01T00:16:40Z"`, string(out))

	err = json.Unmarshal([]byte(`{"entry": null}`), &body)
	assert.Error(t, err)
}
