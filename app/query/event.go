package query

import (
	"cmp"

	"github.com/campusbeat/events-mcp/app/extract"
	"github.com/campusbeat/events-mcp/app/feed"
	"github.com/campusbeat/events-mcp/app/timeparse"
)

// Event is the normalized read-only view over one raw entry. It is derived
// on demand, per query, never persisted: the cache stores raw snapshots only,
// so extraction changes need no cache invalidation.
type Event struct {
	Title            string
	Start            timeparse.Instant
	End              *timeparse.Instant
	StartExplicit    bool
	Location         string
	DescriptionRaw   string
	DescriptionClean string
	Hosts            []string
	Categories       []string
	Link             string
	GUID             string
	Summary          string
}

// Normalize derives the event view from a raw entry.
func Normalize(entry feed.RawEntry, resolver *timeparse.Resolver) Event {
	times := extract.EventTimes(entry)

	ev := Event{
		Title:            cmp.Or(entry.Title, "Untitled Event"),
		Start:            resolver.Resolve(times.Start),
		StartExplicit:    times.StartExplicit,
		Location:         extract.Location(entry),
		DescriptionRaw:   entry.Description,
		DescriptionClean: extract.CleanDescription(entry),
		Hosts:            extract.Hosts(entry),
		Categories:       extract.Categories(entry),
		Link:             entry.Link,
		GUID:             entry.GUID,
		Summary:          entry.Summary,
	}

	if times.End != "" {
		end := resolver.Resolve(times.End)
		ev.End = &end
	}

	return ev
}
