package news

import "time"

// Item is the normalized shape every source produces. PublishedAt stays at
// its zero value when the origin did not supply a parseable timestamp.
type Item struct {
	ID          string
	Title       string
	URL         string
	SourceName  string
	PublishedAt time.Time
	SummaryHint string
	Body        string
	Author      string
}

// Valid reports whether the item carries the fields required to enter the
// pipeline. Items without a title or URL are dropped at the boundary.
func (i Item) Valid() bool {
	return i.Title != "" && i.URL != ""
}
