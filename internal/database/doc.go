// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup and migrations
//	└── library/         # Favourite and history word collections
//
// # Usage
//
//	db, err := database.NewDatabase("./wordly.db")
//	store := library.NewRepository(db.DB)
//
//	err = store.Add(entities.CollectionHistory, "hello")
//	words, err := store.List(entities.CollectionHistory)
//
// The repository is constructed explicitly and injected into its consumers;
// there is no package-level store instance.
package database
