package feed

import (
	"time"
)

// Feed-level metadata, kept for rendering headers and health reporting.
type Meta struct {
	Title       string
	Link        string
	Description string
}

// RawEntry is one feed entry exactly as the upstream document provided it.
// Scalar-or-list extension fields are coerced to slices by the parser, but
// values are otherwise untouched: CDATA wrapping and embedded HTML survive
// into the extraction layer.
type RawEntry struct {
	Title       string
	Link        string
	GUID        string
	Published   string
	Summary     string
	Description string
	Author      string   // "email (Display Name)" or bare name
	Tags        []string // category term attributes from the tag list

	// events namespace extension fields
	Start      string
	End        string
	Location   string
	Hosts      []string
	Categories []string
}

// Snapshot is one immutable capture of the full feed.
type Snapshot struct {
	Meta      Meta
	Entries   []RawEntry
	FetchedAt time.Time
}
