package query

import (
	"context"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/search"

	"github.com/campusbeat/events-mcp/app/extract"
	"github.com/campusbeat/events-mcp/app/feed"
	"github.com/campusbeat/events-mcp/app/timeparse"
)

// exactTitleScore is the short-circuit score for an exact title match; no
// accumulated score can reach it.
const exactTitleScore = 1000

// Engine answers queries over the current feed snapshot. Event views are
// derived lazily per entry per call; there is no persistent index.
type Engine struct {
	cache    *feed.Cache
	resolver *timeparse.Resolver
	matcher  *search.Matcher
}

func NewEngine(cache *feed.Cache, resolver *timeparse.Resolver) *Engine {
	return &Engine{
		cache:    cache,
		resolver: resolver,
		matcher:  search.New(language.English, search.Loose),
	}
}

func (e *Engine) Snapshot(ctx context.Context) (*feed.Snapshot, error) {
	return e.cache.Get(ctx)
}

func (e *Engine) Now() time.Time {
	return e.resolver.Now()
}

// ByWindow returns events whose resolved start instant lies in [lo, hi],
// bounds inclusive, ordered ascending by that instant.
func (e *Engine) ByWindow(ctx context.Context, lo, hi time.Time) ([]Event, error) {
	snapshot, err := e.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	var events []Event
	for _, entry := range snapshot.Entries {
		ev := Normalize(entry, e.resolver)
		start := ev.Start.Time
		if !start.Before(lo) && !start.After(hi) {
			events = append(events, ev)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Time.Before(events[j].Start.Time)
	})

	return events, nil
}

// Upcoming returns events starting within the next days days.
func (e *Engine) Upcoming(ctx context.Context, days int) ([]Event, error) {
	now := e.resolver.Now()
	return e.ByWindow(ctx, now, now.AddDate(0, 0, days))
}

// ByDate resolves a user-supplied date string and returns that calendar
// day's events along with the resolved day.
func (e *Engine) ByDate(ctx context.Context, date string) (time.Time, []Event, error) {
	day, err := e.resolver.ResolveQueryBound(date)
	if err != nil {
		return time.Time{}, nil, err
	}

	events, err := e.ByWindow(ctx, e.resolver.StartOfDay(day), e.resolver.EndOfDay(day))
	return day, events, err
}

// ByDateRange resolves two user-supplied bounds into an inclusive window
// spanning whole calendar days.
func (e *Engine) ByDateRange(ctx context.Context, startDate, endDate string) (time.Time, time.Time, []Event, error) {
	lo, err := e.resolver.ResolveQueryBound(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}
	hi, err := e.resolver.ResolveQueryBound(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}

	events, err := e.ByWindow(ctx, e.resolver.StartOfDay(lo), e.resolver.EndOfDay(hi))
	return lo, hi, events, err
}

// ThisWeek covers now through the end of Sunday.
func (e *Engine) ThisWeek(ctx context.Context) ([]Event, error) {
	now := e.resolver.Now()
	daysToSunday := (7 - int(now.Weekday())) % 7
	return e.ByWindow(ctx, now, e.resolver.EndOfDay(now.AddDate(0, 0, daysToSunday)))
}

// NextWeek covers next Monday through the following Sunday.
func (e *Engine) NextWeek(ctx context.Context) ([]Event, error) {
	now := e.resolver.Now()
	daysToMonday := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	if daysToMonday == 0 {
		daysToMonday = 7
	}
	monday := e.resolver.StartOfDay(now.AddDate(0, 0, daysToMonday))
	return e.ByWindow(ctx, monday, e.resolver.EndOfDay(monday.AddDate(0, 0, 6)))
}

// Weekend covers the current or upcoming Saturday and Sunday.
func (e *Engine) Weekend(ctx context.Context) ([]Event, error) {
	now := e.resolver.Now()
	var saturday time.Time
	if now.Weekday() == time.Sunday {
		saturday = now.AddDate(0, 0, -1)
	} else {
		saturday = now.AddDate(0, 0, int(time.Saturday-now.Weekday()))
	}
	return e.ByWindow(ctx, e.resolver.StartOfDay(saturday), e.resolver.EndOfDay(saturday.AddDate(0, 0, 1)))
}

// ByCategory matches the query against each entry's merged categories, with
// the cleaned description scanned as a last-resort signal. Results are
// deduplicated by link, first occurrence winning. On zero results the
// returned suggestions hold up to three fuzzy category candidates.
func (e *Engine) ByCategory(ctx context.Context, category string) ([]Event, []string, error) {
	snapshot, err := e.cache.Get(ctx)
	if err != nil {
		return nil, nil, err
	}

	pat := e.matcher.CompileString(category)

	var events []Event
	seen := make(map[string]bool)
	for _, entry := range snapshot.Entries {
		ev := Normalize(entry, e.resolver)
		if !e.matchesCategory(pat, ev) {
			continue
		}
		if seen[ev.Link] {
			continue
		}
		seen[ev.Link] = true
		events = append(events, ev)
	}

	if len(events) > 0 {
		return events, nil, nil
	}

	vocabulary := e.vocabulary(snapshot)
	return nil, Suggest(category, vocabulary, maxSuggestions), nil
}

func (e *Engine) matchesCategory(pat *search.Pattern, ev Event) bool {
	for _, c := range ev.Categories {
		if indexOf(pat, c) {
			return true
		}
	}
	// Recall over precision: a category mentioned in free text also counts.
	return indexOf(pat, ev.DescriptionClean)
}

// Categories returns the distinct category vocabulary, sorted.
func (e *Engine) Categories(ctx context.Context) ([]string, error) {
	snapshot, err := e.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	vocabulary := e.vocabulary(snapshot)
	sorted := make([]string, len(vocabulary))
	copy(sorted, vocabulary)
	sort.Strings(sorted)
	return sorted, nil
}

// vocabulary collects distinct categories in feed encounter order. Dedup is
// case-insensitive; the first spelling encountered wins.
func (e *Engine) vocabulary(snapshot *feed.Snapshot) []string {
	var vocabulary []string
	seen := make(map[string]bool)
	for _, entry := range snapshot.Entries {
		ev := Normalize(entry, e.resolver)
		for _, c := range ev.Categories {
			key := strings.ToLower(c)
			if !seen[key] {
				seen[key] = true
				vocabulary = append(vocabulary, c)
			}
		}
	}
	return vocabulary
}

// Search matches the query against title, summary, and cleaned/raw
// description, any field sufficing. Feed order is preserved; no ranking.
func (e *Engine) Search(ctx context.Context, query string) ([]Event, error) {
	snapshot, err := e.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	pat := e.matcher.CompileString(query)

	var events []Event
	for _, entry := range snapshot.Entries {
		ev := Normalize(entry, e.resolver)
		if indexOf(pat, ev.Title) || indexOf(pat, ev.Summary) ||
			indexOf(pat, ev.DescriptionClean) || indexOf(pat, ev.DescriptionRaw) {
			events = append(events, ev)
		}
	}

	return events, nil
}

// BestMatch scores every entry whose title, guid, or description contains
// the query and returns the highest scorer, first encountered winning ties.
// A nil event with nil error means no match.
func (e *Engine) BestMatch(ctx context.Context, query string) (*Event, error) {
	snapshot, err := e.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	pat := e.matcher.CompileString(query)

	var best *Event
	bestScore := 0
	for _, entry := range snapshot.Entries {
		ev := Normalize(entry, e.resolver)
		score := e.scoreMatch(pat, query, ev)
		if score > bestScore {
			bestScore = score
			best = &ev
		}
	}

	return best, nil
}

func (e *Engine) scoreMatch(pat *search.Pattern, query string, ev Event) int {
	if strings.EqualFold(strings.TrimSpace(ev.Title), strings.TrimSpace(query)) {
		return exactTitleScore
	}

	if !indexOf(pat, ev.Title) && !indexOf(pat, ev.GUID) && !indexOf(pat, ev.DescriptionClean) {
		return 0
	}

	score := 5
	if strings.HasPrefix(strings.ToLower(ev.Title), strings.ToLower(strings.TrimSpace(query))) {
		score += 10
	}
	if ev.DescriptionClean != "" {
		score += 3
	}
	if ev.Location != "" && ev.Location != extract.LocationFallback {
		score += 2
	}
	if ev.StartExplicit {
		score += 2
	}

	return score
}

// ByTimeOfDay returns events on the resolved calendar day whose start hour
// falls in the requested bucket. Entries without an event-specific start are
// excluded: the published-date fallback does not apply here.
func (e *Engine) ByTimeOfDay(ctx context.Context, date, timeRange string) (time.Time, []Event, error) {
	day, err := e.resolver.ResolveQueryBound(date)
	if err != nil {
		return time.Time{}, nil, err
	}

	hours, err := timeparse.ParseHourRange(timeRange)
	if err != nil {
		return time.Time{}, nil, err
	}

	snapshot, err := e.cache.Get(ctx)
	if err != nil {
		return time.Time{}, nil, err
	}

	dayStart := e.resolver.StartOfDay(day)

	var events []Event
	for _, entry := range snapshot.Entries {
		ev := Normalize(entry, e.resolver)
		if !ev.StartExplicit {
			continue
		}
		start := ev.Start.Time
		y, m, d := start.Date()
		dy, dm, dd := dayStart.Date()
		if y != dy || m != dm || d != dd {
			continue
		}
		if hours.Contains(start.Hour()) {
			events = append(events, ev)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Time.Before(events[j].Start.Time)
	})

	return day, events, nil
}

// indexOf reports whether the compiled pattern occurs in s, using loose
// (case- and diacritic-insensitive) Unicode matching.
func indexOf(pat *search.Pattern, s string) bool {
	if s == "" {
		return false
	}
	start, _ := pat.IndexString(s)
	return start >= 0
}
