package shared

import "time"

// DateLayout is the wire format for calendar dates. Working hours, vacations
// and totals all key on whole days, so the API exchanges bare YYYY-MM-DD
// values; RFC3339 timestamps are tolerated on input and truncate to the day
// downstream.
const DateLayout = "2006-01-02"

func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse(DateLayout, value)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
