package query

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/campusbeat/events-mcp/app/feed"
	"github.com/campusbeat/events-mcp/app/timeparse"
)

type stubFetcher struct {
	data []byte
}

func (f *stubFetcher) Fetch(ctx context.Context) ([]byte, error) {
	return f.data, nil
}

type testItem struct {
	title      string
	link       string
	guid       string
	start      string
	end        string
	location   string
	hosts      []string
	categories []string
	tags       []string
	desc       string
	published  string
}

func buildFeed(items []testItem) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<rss version="2.0" xmlns:events="urn:campus:events"><channel>`)
	b.WriteString(`<title>ExperienceBU Events</title><link>https://example.edu</link>`)
	b.WriteString(`<description>Campus events</description>`)

	for _, item := range items {
		b.WriteString("<item>")
		fmt.Fprintf(&b, "<title>%s</title>", item.title)
		fmt.Fprintf(&b, "<link>%s</link>", item.link)
		if item.guid != "" {
			fmt.Fprintf(&b, "<guid>%s</guid>", item.guid)
		}
		if item.published != "" {
			fmt.Fprintf(&b, "<pubDate>%s</pubDate>", item.published)
		}
		if item.start != "" {
			fmt.Fprintf(&b, "<events:start>%s</events:start>", item.start)
		}
		if item.end != "" {
			fmt.Fprintf(&b, "<events:end>%s</events:end>", item.end)
		}
		if item.location != "" {
			fmt.Fprintf(&b, "<events:location>%s</events:location>", item.location)
		}
		for _, h := range item.hosts {
			fmt.Fprintf(&b, "<events:host>%s</events:host>", h)
		}
		for _, c := range item.categories {
			fmt.Fprintf(&b, "<events:category>%s</events:category>", c)
		}
		for _, tag := range item.tags {
			fmt.Fprintf(&b, "<category>%s</category>", tag)
		}
		if item.desc != "" {
			fmt.Fprintf(&b, "<description>%s</description>", item.desc)
		}
		b.WriteString("</item>")
	}

	b.WriteString(`</channel></rss>`)
	return []byte(b.String())
}

// newTestEngine builds an engine over a static feed with the clock fixed at
// Tuesday, April 1, 2025, 10:00 Eastern.
func newTestEngine(t *testing.T, items []testItem) *Engine {
	t.Helper()

	resolver, err := timeparse.NewResolverWithClock(timeparse.DefaultZone, func() time.Time {
		loc, _ := time.LoadLocation(timeparse.DefaultZone)
		return time.Date(2025, time.April, 1, 10, 0, 0, 0, loc)
	})
	if err != nil {
		t.Fatalf("Failed to create resolver: %v", err)
	}

	cache := feed.NewCache(&stubFetcher{data: buildFeed(items)}, 300*time.Second)
	return NewEngine(cache, resolver)
}

func titles(events []Event) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Title)
	}
	return out
}

func TestEngine_ByWindow_MembershipAndOrder(t *testing.T) {
	engine := newTestEngine(t, []testItem{
		{title: "Late", link: "https://x/3", start: "2025-04-12T10:00:00-04:00"},
		{title: "Early", link: "https://x/1", start: "2025-04-10T09:00:00-04:00"},
		{title: "Middle", link: "https://x/2", start: "2025-04-11T09:00:00-04:00"},
		{title: "Outside", link: "https://x/4", start: "2025-04-20T09:00:00-04:00"},
	})

	loc, _ := time.LoadLocation(timeparse.DefaultZone)
	lo := time.Date(2025, time.April, 10, 0, 0, 0, 0, loc)
	hi := time.Date(2025, time.April, 12, 23, 59, 59, 0, loc)

	events, err := engine.ByWindow(context.Background(), lo, hi)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	got := titles(events)
	want := []string{"Early", "Middle", "Late"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Position %d: expected '%s', got '%s'", i, want[i], got[i])
		}
	}
}

func TestEngine_ByWindow_InclusiveUpperBound(t *testing.T) {
	engine := newTestEngine(t, []testItem{
		{title: "At the fence", link: "https://x/1", start: "2025-04-12T23:59:59-04:00"},
	})

	loc, _ := time.LoadLocation(timeparse.DefaultZone)
	lo := time.Date(2025, time.April, 10, 0, 0, 0, 0, loc)
	hi := time.Date(2025, time.April, 12, 23, 59, 59, 0, loc)

	events, err := engine.ByWindow(context.Background(), lo, hi)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("Expected an entry exactly at hi to be included, got %d results", len(events))
	}
}

func TestEngine_Upcoming_UsesPublishedFallback(t *testing.T) {
	engine := newTestEngine(t, []testItem{
		{title: "In range", link: "https://x/1", published: "Thu, 03 Apr 2025 16:00:00 GMT"},
		{title: "Too far", link: "https://x/2", published: "Sat, 03 May 2025 16:00:00 GMT"},
	})

	events, err := engine.Upcoming(context.Background(), 7)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(events) != 1 || events[0].Title != "In range" {
		t.Errorf("Expected only the event within 7 days, got %v", titles(events))
	}
}

func TestEngine_ByDate_InvalidInput(t *testing.T) {
	engine := newTestEngine(t, nil)

	_, _, err := engine.ByDate(context.Background(), "not-a-date-at-all totally")
	if err == nil {
		t.Fatal("Expected validation error")
	}
}

func TestEngine_ByCategory_MatchAndDeduplication(t *testing.T) {
	engine := newTestEngine(t, []testItem{
		{title: "Career Fair", link: "https://x/1", categories: []string{"Careers"}, start: "2025-04-10T10:00:00-04:00"},
		{title: "Career Fair encore", link: "https://x/1", categories: []string{"Careers"}, start: "2025-04-10T10:00:00-04:00"},
		{title: "Yoga", link: "https://x/2", tags: []string{"Wellness"}, start: "2025-04-10T12:00:00-04:00"},
	})

	events, suggestions, err := engine.ByCategory(context.Background(), "careers")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if suggestions != nil {
		t.Errorf("Expected no suggestions on a hit, got %v", suggestions)
	}
	if len(events) != 1 {
		t.Fatalf("Expected duplicate links collapsed to 1 result, got %d", len(events))
	}
	if events[0].Title != "Career Fair" {
		t.Errorf("Expected first occurrence to win, got '%s'", events[0].Title)
	}
}

func TestEngine_ByCategory_DescriptionMentionCounts(t *testing.T) {
	engine := newTestEngine(t, []testItem{
		{title: "Morning Flow", link: "https://x/1", tags: []string{"Fitness"},
			desc: "Join us for a relaxing yoga session on the lawn"},
	})

	events, _, err := engine.ByCategory(context.Background(), "yoga")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("Expected a free-text category mention to match, got %d results", len(events))
	}
}

func TestEngine_ByCategory_FuzzySuggestions(t *testing.T) {
	engine := newTestEngine(t, []testItem{
		{title: "A", link: "https://x/1", categories: []string{"Academic"}},
		{title: "B", link: "https://x/2", categories: []string{"Athletics"}},
	})

	events, suggestions, err := engine.ByCategory(context.Background(), "Acadmic")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("Expected no direct matches, got %v", titles(events))
	}
	if len(suggestions) == 0 || suggestions[0] != "Academic" {
		t.Errorf("Expected 'Academic' as the top suggestion, got %v", suggestions)
	}
}

func TestEngine_Search_MatchesAnyField(t *testing.T) {
	engine := newTestEngine(t, []testItem{
		{title: "Trivia Night", link: "https://x/1", desc: "general knowledge"},
		{title: "Quiet Study", link: "https://x/2", desc: "bring your trivia questions"},
		{title: "Unrelated", link: "https://x/3", desc: "nothing here"},
	})

	events, err := engine.Search(context.Background(), "trivia")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	got := titles(events)
	if len(got) != 2 || got[0] != "Trivia Night" || got[1] != "Quiet Study" {
		t.Errorf("Expected feed-order OR matches, got %v", got)
	}
}

func TestEngine_BestMatch_ExactTitleWins(t *testing.T) {
	engine := newTestEngine(t, []testItem{
		{title: "Fall Open House Reception", link: "https://x/1",
			location: "Main Hall", start: "2025-04-10T14:00:00-04:00",
			desc: "A long reception with many details"},
		{title: "Open House", link: "https://x/2"},
	})

	ev, err := engine.BestMatch(context.Background(), "open house")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if ev == nil {
		t.Fatal("Expected a match")
	}
	if ev.Title != "Open House" {
		t.Errorf("Expected exact title match to win regardless of scan order, got '%s'", ev.Title)
	}
}

func TestEngine_BestMatch_PrefixBeatsSubstring(t *testing.T) {
	engine := newTestEngine(t, []testItem{
		{title: "Annual Trivia Showdown", link: "https://x/1"},
		{title: "Trivia at the Pub", link: "https://x/2"},
	})

	ev, err := engine.BestMatch(context.Background(), "trivia")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if ev == nil || ev.Title != "Trivia at the Pub" {
		t.Errorf("Expected title-prefix match to score higher, got %+v", ev)
	}
}

func TestEngine_BestMatch_NoMatchIsNotAnError(t *testing.T) {
	engine := newTestEngine(t, []testItem{
		{title: "Something", link: "https://x/1"},
	})

	ev, err := engine.BestMatch(context.Background(), "zzzzzz")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if ev != nil {
		t.Errorf("Expected no match, got '%s'", ev.Title)
	}
}

func TestEngine_ByTimeOfDay_MorningBucket(t *testing.T) {
	engine := newTestEngine(t, []testItem{
		{title: "Morning Run", link: "https://x/1", start: "2025-04-10T09:00:00-04:00"},
		{title: "Afternoon Talk", link: "https://x/2", start: "2025-04-10T14:00:00-04:00"},
	})

	_, events, err := engine.ByTimeOfDay(context.Background(), "2025-04-10", "morning")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Morning Run" {
		t.Errorf("Expected only the hour-9 event, got %v", titles(events))
	}
}

func TestEngine_ByTimeOfDay_ExcludesPublishedFallback(t *testing.T) {
	engine := newTestEngine(t, []testItem{
		{title: "No explicit start", link: "https://x/1", published: "Thu, 10 Apr 2025 13:00:00 GMT"},
	})

	_, events, err := engine.ByTimeOfDay(context.Background(), "2025-04-10", "morning")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Expected published-only entries to be excluded, got %v", titles(events))
	}
}

func TestEngine_ByTimeOfDay_CustomRange(t *testing.T) {
	engine := newTestEngine(t, []testItem{
		{title: "Afternoon Talk", link: "https://x/1", start: "2025-04-10T14:00:00-04:00"},
		{title: "Evening Social", link: "https://x/2", start: "2025-04-10T19:00:00-04:00"},
	})

	_, events, err := engine.ByTimeOfDay(context.Background(), "2025-04-10", "2pm-5pm")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Afternoon Talk" {
		t.Errorf("Expected only the 2pm event, got %v", titles(events))
	}
}

func TestEngine_WeekWindows(t *testing.T) {
	// Clock is Tuesday April 1. This week runs through Sunday April 6;
	// next week is April 7-13; the weekend is April 5-6.
	engine := newTestEngine(t, []testItem{
		{title: "Wednesday", link: "https://x/1", start: "2025-04-02T12:00:00-04:00"},
		{title: "Saturday", link: "https://x/2", start: "2025-04-05T12:00:00-04:00"},
		{title: "Next Tuesday", link: "https://x/3", start: "2025-04-08T12:00:00-04:00"},
	})

	thisWeek, err := engine.ThisWeek(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	got := titles(thisWeek)
	if len(got) != 2 || got[0] != "Wednesday" || got[1] != "Saturday" {
		t.Errorf("ThisWeek: expected [Wednesday Saturday], got %v", got)
	}

	nextWeek, err := engine.NextWeek(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got := titles(nextWeek); len(got) != 1 || got[0] != "Next Tuesday" {
		t.Errorf("NextWeek: expected [Next Tuesday], got %v", got)
	}

	weekend, err := engine.Weekend(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got := titles(weekend); len(got) != 1 || got[0] != "Saturday" {
		t.Errorf("Weekend: expected [Saturday], got %v", got)
	}
}

func TestEngine_Categories_DistinctSorted(t *testing.T) {
	engine := newTestEngine(t, []testItem{
		{title: "A", link: "https://x/1", categories: []string{"Social"}, tags: []string{"Academic"}},
		{title: "B", link: "https://x/2", categories: []string{"Social"}, tags: []string{"Careers"}},
	})

	categories, err := engine.Categories(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := []string{"Academic", "Careers", "Social"}
	if len(categories) != len(want) {
		t.Fatalf("Expected %v, got %v", want, categories)
	}
	for i := range want {
		if categories[i] != want[i] {
			t.Errorf("Position %d: expected '%s', got '%s'", i, want[i], categories[i])
		}
	}
}

func TestNormalize_Defaults(t *testing.T) {
	engine := newTestEngine(t, nil)

	ev := Normalize(feed.RawEntry{Link: "https://x/1"}, engine.resolver)
	if ev.Title != "Untitled Event" {
		t.Errorf("Expected default title, got '%s'", ev.Title)
	}
	if ev.Location != "Location not specified" {
		t.Errorf("Expected default location, got '%s'", ev.Location)
	}
	if !ev.Start.Fallback {
		t.Error("Expected fallback start instant for an entry with no dates")
	}
	if ev.End != nil {
		t.Error("Expected absent end")
	}
}
