package database

import (
	"database/sql/driver"
	"fmt"
	"time"

	"bookstore-graphql/internal/shared/utils"
)

// NullDate scans a calendar date stored either natively (Postgres DATE) or
// as YYYY-MM-DD text (SQLite), and binds as YYYY-MM-DD text.
type NullDate struct {
	Time  time.Time
	Valid bool
}

func NewNullDate(t *time.Time) NullDate {
	if t == nil {
		return NullDate{}
	}
	return NullDate{Time: utils.TruncateDate(*t), Valid: true}
}

func (d *NullDate) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = NullDate{}
		return nil
	case time.Time:
		// DATE values carry no zone worth converting.
		*d = NullDate{Time: time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC), Valid: true}
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into NullDate", src)
	}
}

func (d *NullDate) parse(s string) error {
	t, err := utils.ParseDate(s)
	if err != nil {
		return err
	}
	*d = NullDate{Time: t, Valid: true}
	return nil
}

func (d NullDate) Value() (driver.Value, error) {
	if !d.Valid {
		return nil, nil
	}
	return utils.FormatDate(d.Time), nil
}

// Ptr returns nil for NULL.
func (d NullDate) Ptr() *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

// Timestamp scans TIMESTAMPTZ or RFC 3339 text and binds as RFC 3339 text.
type Timestamp struct {
	Time time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

func (ts *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		ts.Time = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", src)
	}
}

func (ts *Timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

func (ts Timestamp) Value() (driver.Value, error) {
	return ts.Time.UTC().Format(time.RFC3339Nano), nil
}
