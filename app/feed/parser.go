package feed

import (
	"bytes"
	"cmp"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

// extNS is the namespace prefix the upstream feed uses for its event
// extension elements (events:start, events:host, ...).
const extNS = "events"

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *Parser) Run(data []byte) (*Meta, []RawEntry, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	meta := &Meta{
		Title:       feed.Title,
		Link:        feed.Link,
		Description: feed.Description,
	}

	entries := make([]RawEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		entries = append(entries, p.normalizeItem(item))
	}

	return meta, entries, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) RawEntry {
	entry := RawEntry{
		Title:       item.Title,
		Link:        item.Link,
		GUID:        cmp.Or(item.GUID, item.Link),
		Published:   item.Published,
		Summary:     item.Description,
		Description: cmp.Or(item.Content, item.Description),
		Author:      p.formatAuthor(item),
		Start:       extFirst(item, "start"),
		End:         extFirst(item, "end"),
		Location:    extFirst(item, "location"),
		Hosts:       extAll(item, "host"),
		Categories:  extAll(item, "category"),
	}

	if item.Categories != nil {
		entry.Tags = item.Categories
	}

	return entry
}

func (p *Parser) formatAuthor(item *gofeed.Item) string {
	var name, email string
	if len(item.Authors) > 0 && item.Authors[0] != nil {
		name = item.Authors[0].Name
		email = item.Authors[0].Email
	} else if item.Author != nil {
		name = item.Author.Name
		email = item.Author.Email
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name != "" && email != "" {
		return fmt.Sprintf("%s (%s)", email, name)
	} else if name != "" {
		return name
	}
	return email
}

// extAll collects every value of a namespaced extension element, so a field
// the feed emits as either a scalar or a list always comes back as a slice.
func extAll(item *gofeed.Item, name string) []string {
	ns, ok := item.Extensions[extNS]
	if !ok {
		return nil
	}

	var values []string
	for _, ext := range ns[name] {
		if v := strings.TrimSpace(ext.Value); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func extFirst(item *gofeed.Item, name string) string {
	values := extAll(item, name)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
