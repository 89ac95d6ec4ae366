package entities

import (
	"fmt"
	"time"
)

// Collection names one of the word lists kept in local storage.
type Collection string

const (
	CollectionFavorites Collection = "favorites"
	CollectionHistory   Collection = "history"
)

// ParseCollection maps a collection name to a Collection.
// The British spelling "favourites" is accepted as an alias.
func ParseCollection(name string) (Collection, error) {
	switch name {
	case string(CollectionFavorites), "favourites":
		return CollectionFavorites, nil
	case string(CollectionHistory):
		return CollectionHistory, nil
	default:
		return "", fmt.Errorf("unknown collection %q", name)
	}
}

// FavoriteWord is a word the user marked as favourite.
type FavoriteWord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Word      string    `gorm:"index;size:256;not null" json:"word"`
	CreatedAt time.Time `json:"created_at"`
}

func (FavoriteWord) TableName() string {
	return "favorite_words"
}

// HistoryWord is a committed search term. Each word appears at most once;
// the row ID reflects the most recent search.
type HistoryWord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Word      string    `gorm:"index;size:256;not null" json:"word"`
	CreatedAt time.Time `json:"created_at"`
}

func (HistoryWord) TableName() string {
	return "history_words"
}
