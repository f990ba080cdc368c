// Package timex contains a JSON-friendly duration wrapper used by config
// loading. JSON may specify durations either as strings ("3s", "500ms") or
// as integer nanoseconds.
package timex

import (
	"encoding/json"
	"errors"
	"time"
)

// Duration wraps time.Duration with flexible JSON unmarshalling.
type Duration struct {
	time.Duration
}

var errInvalidDuration = errors.New("invalid duration")

// UnmarshalJSON accepts either a duration string parseable by
// time.ParseDuration or a JSON number interpreted as nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return errInvalidDuration
	}
}

// MarshalJSON renders the duration in its string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
