// Package database provides the data access layer for the quote book.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, migrations
//	└── settings/        # Key/value settings table
//
// The quote book keeps its state as named blobs (the quote list, the selected
// category, sync status), so a single key/value table backs everything. The
// storage package layers the persistent Storage Adapter on top of it:
//
//	db, err := database.NewDatabase("./quotebook.db")
//	store := storage.NewPersistentStore(db)
//	err = store.Set(ctx, "selectedCategory", []byte("Life"))
//
// Sessions live in a separate "sessions" table created by the session
// package on the same connection.
package database
