package store

import (
	"github.com/johnwards/retail/internal/database"
)

// Store provides typed, read-only access to the retail tables.
type Store struct {
	db *database.DB
}

// New creates a Store over db.
func New(db *database.DB) *Store {
	return &Store{db: db}
}
