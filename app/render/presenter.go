// Package render turns normalized events into the canonical plain-text
// blocks returned to the caller.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/campusbeat/events-mcp/app/query"
)

const (
	dayFormat  = "Monday, January 02, 2006"
	timeFormat = "03:04 PM"

	// Description cutoff for list rendering; the detail view is untruncated.
	descriptionLimit = 300
)

// EventBlock renders the compact list form of one event.
func EventBlock(ev query.Event) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Event: %s\n", ev.Title)
	fmt.Fprintf(&b, "Date: %s\n", formatWhen(ev))
	fmt.Fprintf(&b, "Location: %s\n", ev.Location)

	if len(ev.Hosts) > 0 {
		fmt.Fprintf(&b, "Hosted by: %s\n", strings.Join(ev.Hosts, ", "))
	}
	if len(ev.Categories) > 0 {
		fmt.Fprintf(&b, "Categories: %s\n", strings.Join(ev.Categories, ", "))
	}

	fmt.Fprintf(&b, "Description: %s\n", truncate(ev.DescriptionClean, descriptionLimit))
	fmt.Fprintf(&b, "Link: %s\n", ev.Link)

	return b.String()
}

// EventDetail renders the full single-event view with section headers.
func EventDetail(ev query.Event) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", ev.Title)
	fmt.Fprintf(&b, "WHEN: %s\n", formatWhen(ev))
	fmt.Fprintf(&b, "WHERE: %s\n", ev.Location)

	if len(ev.Hosts) > 0 {
		fmt.Fprintf(&b, "HOSTED BY: %s\n", strings.Join(ev.Hosts, ", "))
	}
	if len(ev.Categories) > 0 {
		fmt.Fprintf(&b, "CATEGORIES: %s\n", strings.Join(ev.Categories, ", "))
	}

	fmt.Fprintf(&b, "DESCRIPTION: %s\n", ev.DescriptionClean)
	fmt.Fprintf(&b, "LINK: %s\n", ev.Link)

	return b.String()
}

// EventList renders a header followed by each event's list block.
func EventList(header string, events []query.Event) string {
	blocks := make([]string, 0, len(events))
	for _, ev := range events {
		blocks = append(blocks, EventBlock(ev))
	}
	return header + "\n\n" + strings.Join(blocks, "\n")
}

// Day formats a calendar day for headers.
func Day(t time.Time) string {
	return t.Format(dayFormat)
}

func formatWhen(ev query.Event) string {
	when := ev.Start.Time.Format(dayFormat + " at " + timeFormat)
	if ev.End != nil {
		when += " - " + ev.End.Time.Format(timeFormat)
	}
	// The zone abbreviation labels which wall clock all times are shown in.
	return when + " " + ev.Start.Time.Format("MST")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
