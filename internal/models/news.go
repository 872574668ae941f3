package models

import "time"

// NewsItem is one headline attached to a symbol.
type NewsItem struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Source      string    `json:"source"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	Symbol      string    `json:"symbol"`
}
