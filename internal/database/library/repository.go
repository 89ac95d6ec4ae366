// Package library provides database operations for the favourite and
// history word collections.
//
// Both collections store plain words keyed by the word itself. Matching is
// exact and case-sensitive. Every write runs in its own transaction and is
// committed before the method returns; on failure the transaction is rolled
// back and a *PersistenceError is returned.
//
// # Collection rules
//
//   - history: adding a word first removes any existing row with the same
//     word, so each word appears once and List returns most-recent-first.
//   - favorites: adding a word that is already present is a no-op, so the
//     collection behaves as a set in insertion order.
//
// # Usage
//
//	repo := library.NewRepository(db)
//	err := repo.Add(entities.CollectionHistory, "hello")
//	words, err := repo.List(entities.CollectionHistory)
package library

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/mrlokans/wordly/internal/entities"
)

// Repository handles all word library database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new word library repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// model returns an empty model value for the collection's table.
func model(c entities.Collection) (any, error) {
	switch c {
	case entities.CollectionFavorites:
		return &entities.FavoriteWord{}, nil
	case entities.CollectionHistory:
		return &entities.HistoryWord{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}
}

func newRecord(c entities.Collection, word string) any {
	if c == entities.CollectionHistory {
		return &entities.HistoryWord{Word: word}
	}
	return &entities.FavoriteWord{Word: word}
}

// Add stores a word in the collection.
func (r *Repository) Add(c entities.Collection, word string) error {
	m, err := model(c)
	if err != nil {
		return err
	}
	if word == "" {
		return ErrEmptyWord
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		switch c {
		case entities.CollectionHistory:
			if err := tx.Where("word = ?", word).Delete(m).Error; err != nil {
				return err
			}
		case entities.CollectionFavorites:
			var count int64
			if err := tx.Model(m).Where("word = ?", word).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return nil
			}
		}
		return tx.Create(newRecord(c, word)).Error
	})
	if err != nil {
		log.Printf("[LIBRARY] Failed to add %q to %s: %v", word, c, err)
		return &PersistenceError{Op: "add", Collection: c, Word: word, Err: err}
	}
	return nil
}

// List returns all words in the collection. History is most-recent-first;
// favourites are returned in insertion order.
func (r *Repository) List(c entities.Collection) ([]string, error) {
	m, err := model(c)
	if err != nil {
		return nil, err
	}

	order := "id ASC"
	if c == entities.CollectionHistory {
		order = "id DESC"
	}

	words := []string{}
	if err := r.db.Model(m).Order(order).Pluck("word", &words).Error; err != nil {
		return nil, &PersistenceError{Op: "list", Collection: c, Err: err}
	}
	return words, nil
}

// Remove deletes every row equal to word. Removing an absent word is not an error.
func (r *Repository) Remove(c entities.Collection, word string) error {
	m, err := model(c)
	if err != nil {
		return err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Where("word = ?", word).Delete(m).Error
	})
	if err != nil {
		log.Printf("[LIBRARY] Failed to remove %q from %s: %v", word, c, err)
		return &PersistenceError{Op: "remove", Collection: c, Word: word, Err: err}
	}
	return nil
}

// Contains reports whether the collection holds word (exact match).
func (r *Repository) Contains(c entities.Collection, word string) (bool, error) {
	m, err := model(c)
	if err != nil {
		return false, err
	}

	var count int64
	if err := r.db.Model(m).Where("word = ?", word).Count(&count).Error; err != nil {
		return false, &PersistenceError{Op: "contains", Collection: c, Word: word, Err: err}
	}
	return count > 0, nil
}

// Toggle removes word when present and adds it otherwise, in one transaction.
// It returns whether the word is in the collection afterwards.
func (r *Repository) Toggle(c entities.Collection, word string) (bool, error) {
	m, err := model(c)
	if err != nil {
		return false, err
	}
	if word == "" {
		return false, ErrEmptyWord
	}

	var present bool
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(m).Where("word = ?", word).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			present = false
			return tx.Where("word = ?", word).Delete(m).Error
		}
		present = true
		return tx.Create(newRecord(c, word)).Error
	})
	if err != nil {
		log.Printf("[LIBRARY] Failed to toggle %q in %s: %v", word, c, err)
		return false, &PersistenceError{Op: "toggle", Collection: c, Word: word, Err: err}
	}
	return present, nil
}

// Clear removes every word from the collection.
func (r *Repository) Clear(c entities.Collection) error {
	m, err := model(c)
	if err != nil {
		return err
	}

	err = r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error
	if err != nil {
		return &PersistenceError{Op: "clear", Collection: c, Err: err}
	}
	return nil
}

// Trim keeps only the newest keep rows of the collection and returns how
// many rows were deleted. keep <= 0 leaves the collection untouched.
func (r *Repository) Trim(c entities.Collection, keep int) (int64, error) {
	m, err := model(c)
	if err != nil {
		return 0, err
	}
	if keep <= 0 {
		return 0, nil
	}

	var deleted int64
	err = r.db.Transaction(func(tx *gorm.DB) error {
		newest := tx.Model(m).Select("id").Order("id DESC").Limit(keep)
		res := tx.Where("id NOT IN (?)", newest).Delete(m)
		deleted = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, &PersistenceError{Op: "trim", Collection: c, Err: err}
	}
	return deleted, nil
}

// Count returns the number of rows in the collection.
func (r *Repository) Count(c entities.Collection) (int64, error) {
	m, err := model(c)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.Model(m).Count(&count).Error; err != nil {
		return 0, &PersistenceError{Op: "count", Collection: c, Err: err}
	}
	return count, nil
}
