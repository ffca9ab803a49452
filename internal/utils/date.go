package util

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// LocalDate is a calendar date with no time-of-day or zone semantics.
// It is stored at midnight UTC so weekday arithmetic never drifts.
type LocalDate struct {
	time.Time
}

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

func NewLocalDate(year int, month time.Month, day int) LocalDate {
	return LocalDate{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseLocalDate accepts "2006-01-02" or a full RFC 3339 timestamp. For
// timestamps the calendar date is taken in the timestamp's own offset.
func ParseLocalDate(s string) (LocalDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LocalDate{}, ErrInvalidDate
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return NewLocalDate(t.Year(), t.Month(), t.Day()), nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewLocalDate(t.Year(), t.Month(), t.Day()), nil
		}
	}
	return LocalDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func (d LocalDate) String() string {
	return d.Format(DateLayout)
}

func (d LocalDate) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d LocalDate) AddDays(n int) LocalDate {
	return LocalDate{Time: d.Time.AddDate(0, 0, n)}
}

// StartOfWeek returns the Monday on or before d.
func (d LocalDate) StartOfWeek() LocalDate {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

func (d *LocalDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := ParseLocalDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d LocalDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d LocalDate) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *LocalDate) Scan(value interface{}) error {
	if value == nil {
		d.Time = time.Time{}
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		*d = NewLocalDate(v.Year(), v.Month(), v.Day())
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("cannot scan type %T into LocalDate", value)
	}
}

func (d *LocalDate) scanString(s string) error {
	if len(s) >= len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseLocalDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
