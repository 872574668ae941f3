package models

import "time"

// WatchlistEntry is one symbol in the user's watchlist.
type WatchlistEntry struct {
	Symbol  string    `json:"symbol"`
	AddedAt time.Time `json:"addedAt"`
}
