package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a YYYY-MM-DD calendar date, the value a date input submits.
type Date string

// DateOf takes the calendar fields of t in its own location.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

func (d Date) Valid() bool {
	_, err := time.Parse(dateLayout, string(d))
	return err == nil
}

// Time is midnight UTC of the date, the instant a browser's
// new Date("YYYY-MM-DD") stands for.
func (d Date) Time() (time.Time, error) {
	return time.Parse(dateLayout, string(d))
}

// UnmarshalJSON accepts YYYY-MM-DD and, for API clients, RFC 3339
// timestamps, which are cut down to their calendar date.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = ""
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*d = DateOf(t)
		return nil
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("date %q is not YYYY-MM-DD", s)
	}
	*d = Date(s)
	return nil
}
