package booking

import (
	"strconv"
	"strings"
	"time"
)

// localLayouts are accepted for dates without a zone; they are read in
// the service location.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseProviderID validates the provider_id field.
func ParseProviderID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidProvider
	}
	return uint(id), nil
}

// ParseDate validates the date field. Zoned timestamps keep their
// instant; bare ones are read in loc.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// ParseDate reads a date in the service location.
func (s *Service) ParseDate(raw string) (time.Time, error) {
	return ParseDate(raw, s.loc)
}
