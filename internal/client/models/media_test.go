package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogFixture = `[
  {
    "id": "m1",
    "title": "Beyond Earth",
    "thumbnail": {
      "trending": {"small": "thumbs/beyond/trending/small.jpg", "large": "thumbs/beyond/trending/large.jpg"},
      "poster": {"small": "thumbs/beyond/poster/small.jpg", "large": "thumbs/beyond/poster/large.jpg"}
    },
    "year": 2019,
    "category": "Movie",
    "rating": "PG",
    "isBookmarked": false,
    "isTrending": true
  },
  {
    "id": "t1",
    "title": "Undiscovered Cities",
    "thumbnail": {
      "poster": {"small": "thumbs/cities/poster/small.jpg", "large": "thumbs/cities/poster/large.jpg"}
    },
    "year": 2019,
    "category": "TV Series",
    "rating": "E",
    "isBookmarked": true,
    "isTrending": false
  }
]`

func TestMediaItem_DecodeCatalog(t *testing.T) {
	var items []*MediaItem
	require.NoError(t, json.Unmarshal([]byte(catalogFixture), &items))
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "m1", first.ID)
	assert.Equal(t, 2019, first.Year)
	assert.True(t, first.IsMovie())
	assert.True(t, first.IsTrending)
	require.NotNil(t, first.Thumbnail.Trending)
	assert.Equal(t, "thumbs/beyond/trending/large.jpg", first.Thumbnail.Trending.Large)

	second := items[1]
	assert.True(t, second.IsTVSeries())
	assert.True(t, second.IsBookmarked)
	assert.Nil(t, second.Thumbnail.Trending)
	require.NotNil(t, second.Thumbnail.Poster)
}

func TestMediaItem_WithBookmark_CopiesValue(t *testing.T) {
	orig := &MediaItem{ID: "x", Title: "X", IsBookmarked: false}

	got := orig.WithBookmark(true)

	assert.NotSame(t, orig, got)
	assert.False(t, orig.IsBookmarked)
	assert.True(t, got.IsBookmarked)
	assert.Equal(t, orig.Title, got.Title)
}

func TestValidateSnapshot(t *testing.T) {
	tests := []struct {
		name    string
		items   []*MediaItem
		wantErr error
	}{
		{name: "empty", items: nil},
		{name: "unique", items: []*MediaItem{{ID: "a"}, {ID: "b"}}},
		{name: "duplicate", items: []*MediaItem{{ID: "a"}, {ID: "a"}}, wantErr: ErrDuplicateID},
		{name: "missing id", items: []*MediaItem{{ID: "a"}, {}}, wantErr: ErrEmptyID},
		{name: "nil entry", items: []*MediaItem{nil}, wantErr: ErrEmptyID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshot(tt.items)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
