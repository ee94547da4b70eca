// Package models defines the client-side data shapes exchanged with the
// media catalog API.
package models

import (
	"errors"
	"fmt"
)

// Category classifies a catalog entry.
type Category string

const (
	CategoryMovie    Category = "Movie"
	CategoryTVSeries Category = "TV Series"
)

var (
	ErrEmptyID     = errors.New("media item without id")
	ErrDuplicateID = errors.New("duplicate media item id")
)

// ImageSet is one presentation context of a thumbnail. Paths are relative
// to the asset base URL.
type ImageSet struct {
	Small string `json:"small"`
	Large string `json:"large"`
}

// Thumbnail carries the trending (carousel) and poster (grid) variants.
// Trending is only set for items that can appear in the carousel.
type Thumbnail struct {
	Trending *ImageSet `json:"trending,omitempty"`
	Poster   *ImageSet `json:"poster,omitempty"`
}

// MediaItem is one entry of the catalog. Everything except IsBookmarked is
// fixed for the lifetime of a snapshot; a bookmark change produces a new
// MediaItem value rather than mutating a shared one.
type MediaItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Year         int       `json:"year"`
	Category     Category  `json:"category"`
	Rating       string    `json:"rating"`
	IsTrending   bool      `json:"isTrending"`
	IsBookmarked bool      `json:"isBookmarked"`
	Thumbnail    Thumbnail `json:"thumbnail"`
}

// WithBookmark returns a copy of m carrying the given bookmark value.
func (m *MediaItem) WithBookmark(bookmarked bool) *MediaItem {
	c := *m
	c.IsBookmarked = bookmarked
	return &c
}

func (m *MediaItem) IsMovie() bool {
	return m.Category == CategoryMovie
}

func (m *MediaItem) IsTVSeries() bool {
	return m.Category == CategoryTVSeries
}

// ValidateSnapshot checks the catalog invariant: no nil entries and every id
// present and unique.
func ValidateSnapshot(items []*MediaItem) error {
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if item == nil || item.ID == "" {
			return fmt.Errorf("%w at position %d", ErrEmptyID, i)
		}
		if _, ok := seen[item.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}
