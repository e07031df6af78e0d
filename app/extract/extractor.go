// Package extract pulls structured values out of the mixed plain/HTML/CDATA
// fields of a raw feed entry. The upstream feed embeds an h-event microformat
// block inside each description; the fixed class markers below are the
// structural anchors for targeted extraction. Every function is pure.
package extract

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/campusbeat/events-mcp/app/feed"
)

const LocationFallback = "Location not specified"

var (
	cdataRe       = regexp.MustCompile(`(?s)^\s*<!\[CDATA\[(.*)\]\]>\s*$`)
	descBlockRe   = regexp.MustCompile(`(?is)<div[^>]*class="[^"]*p-description[^"]*"[^>]*>(.*?)</div>`)
	locationRe    = regexp.MustCompile(`(?is)<span[^>]*class="[^"]*p-location[^"]*"[^>]*>(.*?)</span>`)
	startTimeRe   = regexp.MustCompile(`(?is)<time[^>]*class="[^"]*dt-start[^"]*"[^>]*datetime="([^"]+)"`)
	endTimeRe     = regexp.MustCompile(`(?is)<time[^>]*class="[^"]*dt-end[^"]*"[^>]*datetime="([^"]+)"`)
	displayNameRe = regexp.MustCompile(`\(([^)]+)\)`)
	whitespaceRe  = regexp.MustCompile(`\s+`)

	stripPolicy = bluemonday.StrictPolicy()

	angleStripper = strings.NewReplacer("<", "", ">", "")
)

// Times carries the raw timestamp strings selected for an entry.
// StartExplicit records whether the start came from an event-specific source
// (microformat marker or namespace field) rather than the published-date
// fallback.
type Times struct {
	Start         string
	End           string
	StartExplicit bool
}

// UnwrapCDATA removes literal CDATA wrapping that survives XML parsing when
// the feed double-wraps field values.
func UnwrapCDATA(s string) string {
	if m := cdataRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(s)
}

// CleanDescription returns the entry description with HTML and CDATA removed
// and whitespace collapsed. When the description carries the microformat
// description block, only that block's contents are used.
func CleanDescription(entry feed.RawEntry) string {
	raw := UnwrapCDATA(entry.Description)

	if m := descBlockRe.FindStringSubmatch(raw); m != nil {
		raw = m[1]
	}

	return stripTags(raw)
}

// Location prefers the microformat location span inside the description,
// then the namespace location field, then the fixed fallback text.
func Location(entry feed.RawEntry) string {
	if m := locationRe.FindStringSubmatch(UnwrapCDATA(entry.Description)); m != nil {
		if loc := stripTags(m[1]); loc != "" {
			return loc
		}
	}

	if loc := UnwrapCDATA(entry.Location); loc != "" {
		return loc
	}

	return LocationFallback
}

// EventTimes selects the entry's start/end timestamp strings by priority:
// microformat datetime attributes, then namespace start/end fields, then the
// generic published date as a start-only fallback.
func EventTimes(entry feed.RawEntry) Times {
	desc := UnwrapCDATA(entry.Description)

	var t Times
	if m := startTimeRe.FindStringSubmatch(desc); m != nil {
		t.Start = strings.TrimSpace(m[1])
	}
	if m := endTimeRe.FindStringSubmatch(desc); m != nil {
		t.End = strings.TrimSpace(m[1])
	}

	if t.Start == "" {
		t.Start = UnwrapCDATA(entry.Start)
	}
	if t.End == "" {
		t.End = UnwrapCDATA(entry.End)
	}

	t.StartExplicit = t.Start != ""
	if t.Start == "" {
		t.Start = strings.TrimSpace(entry.Published)
	}

	return t
}

// Hosts prefers the explicit host field, then the parenthesized display name
// of an "email (Display Name)" author, then the raw author string.
func Hosts(entry feed.RawEntry) []string {
	if len(entry.Hosts) > 0 {
		hosts := make([]string, 0, len(entry.Hosts))
		for _, h := range entry.Hosts {
			if v := UnwrapCDATA(h); v != "" {
				hosts = append(hosts, v)
			}
		}
		if len(hosts) > 0 {
			return hosts
		}
	}

	author := strings.TrimSpace(entry.Author)
	if author == "" {
		return nil
	}

	if m := displayNameRe.FindStringSubmatch(author); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			return []string{name}
		}
	}

	return []string{author}
}

// Categories merges the namespace category field with the tag-list terms,
// namespace values first. Duplicates are preserved.
func Categories(entry feed.RawEntry) []string {
	var categories []string

	for _, c := range entry.Categories {
		if v := UnwrapCDATA(c); v != "" {
			categories = append(categories, v)
		}
	}

	for _, tag := range entry.Tags {
		if v := strings.TrimSpace(tag); v != "" {
			categories = append(categories, v)
		}
	}

	return categories
}

func stripTags(s string) string {
	// Unescaping after sanitizing can reintroduce angle brackets from
	// entity-encoded text; drop any that remain so the output carries none.
	text := angleStripper.Replace(html.UnescapeString(stripPolicy.Sanitize(s)))
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
