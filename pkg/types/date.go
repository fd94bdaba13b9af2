package types

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day without a time component, stored as a SQL DATE and
// rendered as "YYYY-MM-DD" in JSON.
type Date struct {
	time.Time
}

// NewDate builds a Date truncated to midnight UTC.
func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day.
func Today() Date {
	return NewDate(time.Now().UTC())
}

// ParseDate parses "YYYY-MM-DD" input.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return Date{Time: t}, nil
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalJSON renders the date as a quoted "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD" and full RFC3339 timestamps.
func (d *Date) UnmarshalJSON(raw []byte) error {
	value := strings.Trim(string(raw), `"`)
	if value == "" || value == "null" {
		return nil
	}
	if parsed, err := time.Parse(dateLayout, value); err == nil {
		*d = Date{Time: parsed}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid date %q", value)
	}
	*d = NewDate(parsed)
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case nil:
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// GormDataType tells GORM to map the type to a DATE column.
func (Date) GormDataType() string {
	return "date"
}
