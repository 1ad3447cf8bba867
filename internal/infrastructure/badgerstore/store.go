// Package badgerstore implements the device-local persistence facilities on
// an embedded BadgerDB: the scalar key-value slice (favorites, visit
// counters, one-time flags), the structured diary collection with binary
// photo attachments, and the storage-change notifier.
package badgerstore

import (
	"strings"

	badger "github.com/dgraph-io/badger/v4"
)

// Key layout. One flat namespace: scalar values under plain browser-storage
// style names, structured diary records under a path-like prefix.
const (
	favoritesKey     = "favoriteStores"
	visitCountPrefix = "visitCount_"
	flagPrefix       = "flag_"
	diaryPrefix      = "diary/"
	diarySequenceKey = "seq/diary"
)

// Open opens (or creates) the badger directory. The handle is a process-wide
// singleton: opened once at startup, closed at process exit.
func Open(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	return badger.Open(opts)
}

// OpenInMemory opens a throwaway in-memory database, used by tests.
func OpenInMemory() (*badger.DB, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	return badger.Open(opts)
}

// visitCountKey returns the scalar key for one store's counter.
func visitCountKey(storeID string) []byte {
	return []byte(visitCountPrefix + storeID)
}

// flagKey returns the scalar key for one UI flag.
func flagKey(name string) []byte {
	return []byte(flagPrefix + strings.TrimSpace(name))
}
