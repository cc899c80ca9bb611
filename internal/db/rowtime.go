package db

import (
	"fmt"
	"time"
)

// rowTime scans timestamps stored natively (Postgres) or as text (SQLite).
type rowTime struct {
	time.Time
}

var rowTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

func (t *rowTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		return fmt.Errorf("created_at is NULL")
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (t *rowTime) parse(s string) error {
	for _, layout := range rowTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}
