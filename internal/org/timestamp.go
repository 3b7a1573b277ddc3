package org

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// timestampRe matches active <...> and inactive [...] org timestamps with an
// optional weekday, time of day, time range and repeater.
var timestampRe = regexp.MustCompile(`[<\[](\d{4}-\d{2}-\d{2})(?:\s+[^\s\d>\]]+)?(?:\s+(\d{1,2}):(\d{2}))?[^>\]]*[>\]]`)

// ParseTimestamp parses the first org timestamp found in s.
// "24:00" is read as midnight of the same day.
func ParseTimestamp(s string) (time.Time, error) {
	m := timestampRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}

	return timestampFromMatch(m)
}

func timestampFromMatch(m []string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", m[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, m[0])
	}

	if m[2] == "" {
		return day, nil
	}

	hour, _ := strconv.Atoi(m[2])
	minute, _ := strconv.Atoi(m[3])

	if hour == 24 && minute == 0 {
		hour = 0
	}

	if hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, m[0])
	}

	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute), nil
}
