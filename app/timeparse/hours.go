package timeparse

import (
	"regexp"
	"strings"
)

// HourRange is an inclusive hour-of-day window.
type HourRange struct {
	Lo int
	Hi int
}

const hourRangeExpected = `"morning", "afternoon", "evening", or an hour range like "2pm-5pm"`

// Named time-of-day buckets.
var buckets = map[string]HourRange{
	"morning":   {Lo: 5, Hi: 11},  // 05:00-11:59
	"afternoon": {Lo: 12, Hi: 16}, // 12:00-16:59
	"evening":   {Lo: 17, Hi: 23}, // 17:00-23:59
}

var hourRangeRe = regexp.MustCompile(`^(\d{1,2})\s*(am|pm)?\s*(?:-|–|to)\s*(\d{1,2})\s*(am|pm)?$`)

// ParseHourRange recognizes the literal bucket tokens and bare hour ranges
// ("2pm-5pm", "14-17").
func ParseHourRange(raw string) (HourRange, error) {
	s := strings.ToLower(strings.TrimSpace(raw))

	if bucket, ok := buckets[s]; ok {
		return bucket, nil
	}

	m := hourRangeRe.FindStringSubmatch(s)
	if m == nil {
		return HourRange{}, &ValidationError{Input: raw, Expected: hourRangeExpected}
	}

	lo := clockHour(atoi(m[1]), m[2])
	hi := clockHour(atoi(m[3]), m[4])

	if lo < 0 || lo > 23 || hi < 0 || hi > 23 || lo > hi {
		return HourRange{}, &ValidationError{Input: raw, Expected: hourRangeExpected}
	}

	return HourRange{Lo: lo, Hi: hi}, nil
}

// Contains reports whether an hour-of-day lies within the range, bounds
// inclusive.
func (h HourRange) Contains(hour int) bool {
	return hour >= h.Lo && hour <= h.Hi
}

func clockHour(h int, meridiem string) int {
	switch meridiem {
	case "pm":
		if h < 12 {
			h += 12
		}
	case "am":
		if h == 12 {
			h = 0
		}
	}
	return h
}
