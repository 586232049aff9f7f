package shared

import "time"

// dateLayouts are the formats accepted for date query and body fields,
// tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate parses a date string in RFC3339 or YYYY-MM-DD form. An empty
// string parses to the zero time without error.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	var lastErr error
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
