package fee

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"parking-fee/internal/errors"
)

// ParseInstant accepts an RFC 3339 timestamp or Unix epoch milliseconds
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.Input("timestamp is required")
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.TypeInput, err, "invalid timestamp %q", s)
	}
	return t, nil
}

// Instant is a time.Time that decodes from either a JSON string or a JSON number of epoch milliseconds
type Instant struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler
func (i *Instant) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return errors.Input("timestamp is required")
	}

	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}

	t, err := ParseInstant(raw)
	if err != nil {
		return err
	}
	i.Time = t
	return nil
}

// MarshalJSON writes the instant as RFC 3339 in UTC
func (i Instant) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.UTC().Format(time.RFC3339Nano))
}
