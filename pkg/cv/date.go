package cv

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar-date form used by the CV form.
	DateLayout = "2006-01-02"
	// TimestampLayout is the persisted form: start-of-day UTC with milliseconds.
	TimestampLayout = "2006-01-02T15:04:05.000Z"
)

// Date is a CV date. It is always held in UTC; the zero value means "not set"
// and is encoded as JSON null.
type Date struct {
	t time.Time
}

// NewDate wraps t, normalised to UTC.
func NewDate(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return Date{t: t.UTC()}
}

// MustDate parses a date-only string and panics on error. Test and seed helper.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDate accepts "", a calendar date (2006-01-02) or an RFC 3339 timestamp.
// Calendar dates become midnight UTC.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.ParseInLocation(DateLayout, s, time.UTC); err == nil {
		return NewDate(t), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return NewDate(t), nil
	}
	return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
}

func (d Date) IsZero() bool    { return d.t.IsZero() }
func (d Date) Time() time.Time { return d.t }

// Equal reports whether both dates denote the same instant.
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// DateOnly drops the time-of-day part; the zero date yields "".
func (d Date) DateOnly() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// Truncate returns the date at start of day (UTC).
func (d Date) Truncate() Date {
	if d.IsZero() {
		return d
	}
	y, m, day := d.t.Date()
	return Date{t: time.Date(y, m, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(TimestampLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.t.Format(TimestampLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
