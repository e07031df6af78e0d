// Package timeparse resolves the feed's heterogeneous date/time
// representations into naive instants anchored in a fixed reference zone.
// The runtime environment cannot reliably tell us the feed's local timezone,
// so everything is converted into the configured presentation zone and
// compared wall-clock; output labels carry that zone's abbreviation.
package timeparse

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DefaultZone is the presentation timezone for the upstream feed.
const DefaultZone = "America/Toronto"

// Instant is a resolved point in time. Fallback marks values produced by the
// soft-fail path: the input could not be parsed and the current time was
// substituted. Callers may treat those specially; the query engine orders
// them like any other instant.
type Instant struct {
	Time     time.Time
	Fallback bool
}

// ValidationError reports malformed caller-supplied date or time-range input.
type ValidationError struct {
	Input    string
	Expected string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %q, expected %s", e.Input, e.Expected)
}

type Resolver struct {
	loc   *time.Location
	nowFn func() time.Time
}

func NewResolver(zone string) (*Resolver, error) {
	if zone == "" {
		zone = DefaultZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", zone, err)
	}
	return &Resolver{loc: loc, nowFn: time.Now}, nil
}

// NewResolverWithClock is NewResolver with an injected clock.
func NewResolverWithClock(zone string, now func() time.Time) (*Resolver, error) {
	r, err := NewResolver(zone)
	if err != nil {
		return nil, err
	}
	r.nowFn = now
	return r, nil
}

// Now returns the current instant in the reference zone.
func (r *Resolver) Now() time.Time {
	return r.nowFn().In(r.loc)
}

// Resolve parses a feed timestamp. Handles ISO-8601 with offset, ISO-8601
// with a GMT/UTC marker, RFC-822 feed dates, and bare YYYY-MM-DD dates.
// Timestamps without zone information are taken as already local to the
// reference zone. Never fails: unparsable input yields the current instant
// tagged Fallback.
func (r *Resolver) Resolve(raw string) Instant {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Instant{Time: r.Now(), Fallback: true}
	}

	t, err := dateparse.ParseIn(raw, r.loc)
	if err != nil {
		return Instant{Time: r.Now(), Fallback: true}
	}

	return Instant{Time: t.In(r.loc)}
}

var (
	weekdayRe  = regexp.MustCompile(`^(?:next\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)$`)
	monthDayRe = regexp.MustCompile(`^([a-z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?$`)
)

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var weekdaysByName = map[string]time.Weekday{
	"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
	"sunday": time.Sunday,
}

// ResolveQueryBound parses a user-supplied date bound: bare YYYY-MM-DD dates
// plus loose natural-language forms ("April 10", "today", "next Monday").
// Unlike Resolve, malformed input is an error so the caller can answer with a
// corrective message.
func (r *Resolver) ResolveQueryBound(raw string) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	now := r.Now()

	switch s {
	case "":
		return time.Time{}, &ValidationError{Input: raw, Expected: "YYYY-MM-DD"}
	case "today":
		return now, nil
	case "tomorrow":
		return now.AddDate(0, 0, 1), nil
	}

	if m := weekdayRe.FindStringSubmatch(s); m != nil {
		target := weekdaysByName[m[1]]
		days := int(target-now.Weekday()+7) % 7
		if days == 0 {
			days = 7
		}
		return now.AddDate(0, 0, days), nil
	}

	if m := monthDayRe.FindStringSubmatch(s); m != nil {
		if month, ok := monthsByName[m[1]]; ok {
			day := atoi(m[2])
			if day >= 1 && day <= 31 {
				return time.Date(now.Year(), month, day, 0, 0, 0, 0, r.loc), nil
			}
		}
	}

	t, err := dateparse.ParseIn(raw, r.loc)
	if err != nil {
		return time.Time{}, &ValidationError{Input: raw, Expected: "YYYY-MM-DD"}
	}
	return t.In(r.loc), nil
}

// StartOfDay returns midnight of t's calendar day in the reference zone.
func (r *Resolver) StartOfDay(t time.Time) time.Time {
	t = t.In(r.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, r.loc)
}

// EndOfDay returns 23:59:59 of t's calendar day in the reference zone.
func (r *Resolver) EndOfDay(t time.Time) time.Time {
	t = t.In(r.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, r.loc)
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
