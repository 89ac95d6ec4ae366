package services

import "github.com/mrlokans/wordly/internal/entities"

// WordLibrary is key-string CRUD over the favourite and history collections.
// Implemented by library.Repository.
type WordLibrary interface {
	Add(c entities.Collection, word string) error
	List(c entities.Collection) ([]string, error)
	Remove(c entities.Collection, word string) error
	Contains(c entities.Collection, word string) (bool, error)
	Toggle(c entities.Collection, word string) (bool, error)
	Clear(c entities.Collection) error
}
