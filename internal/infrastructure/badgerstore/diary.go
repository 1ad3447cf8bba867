package badgerstore

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/jirodb/services/api/internal/public/application"
	"github.com/jirodb/services/api/internal/public/domain"
)

// DiaryRepository implements application.DiaryRepository. Records are stored
// as one JSON document per key with the photo blobs embedded, keyed by a
// zero-padded id so iteration order equals insertion order. Ids come from a
// badger sequence and are monotonic across the store's lifetime; reopening
// the database never reuses an id.
type DiaryRepository struct {
	db  *badger.DB
	seq *badger.Sequence
}

// NewDiaryRepository creates the repository and claims the diary id sequence.
// Opening an existing database picks the sequence up where it left off.
func NewDiaryRepository(db *badger.DB, bandwidth uint64) (*DiaryRepository, error) {
	if bandwidth == 0 {
		bandwidth = 16
	}
	seq, err := db.GetSequence([]byte(diarySequenceKey), bandwidth)
	if err != nil {
		return nil, fmt.Errorf("claim diary sequence: %w", err)
	}
	return &DiaryRepository{db: db, seq: seq}, nil
}

// Close releases the unused tail of the id sequence.
func (r *DiaryRepository) Close() error {
	return r.seq.Release()
}

// GetAll returns every record in id order. A record that fails to decode is
// skipped rather than failing the whole read.
func (r *DiaryRepository) GetAll(_ context.Context) ([]domain.DiaryRecord, error) {
	records := make([]domain.DiaryRecord, 0)
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(diaryPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var doc DiaryRecordDocument
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &doc)
			}); err != nil {
				continue
			}
			records = append(records, mapDiaryDocument(doc))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list diary records: %w", err)
	}
	return records, nil
}

// Find returns one record by id.
func (r *DiaryRepository) Find(_ context.Context, id uint64) (*domain.DiaryRecord, error) {
	var record domain.DiaryRecord
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(diaryKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return application.ErrDiaryNotFound
		}
		if err != nil {
			return fmt.Errorf("get diary record: %w", err)
		}
		return item.Value(func(val []byte) error {
			var doc DiaryRecordDocument
			if err := json.Unmarshal(val, &doc); err != nil {
				return application.ErrDiaryNotFound
			}
			record = mapDiaryDocument(doc)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Add assigns the next id and persists the record as one unit.
func (r *DiaryRepository) Add(_ context.Context, record *domain.DiaryRecord) (uint64, error) {
	id, err := r.nextID()
	if err != nil {
		return 0, err
	}

	doc := toDiaryDocument(*record)
	doc.ID = id
	data, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("marshal diary record: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(diaryKey(id), data)
	})
	if err != nil {
		return 0, fmt.Errorf("set diary record: %w", err)
	}
	return id, nil
}

// Delete removes one record. Unknown ids are a no-op, not an error.
func (r *DiaryRepository) Delete(_ context.Context, id uint64) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(diaryKey(id))
	})
	if err != nil {
		return fmt.Errorf("delete diary record: %w", err)
	}
	return nil
}

// nextID draws from the sequence, skipping 0 so visible ids start at 1.
func (r *DiaryRepository) nextID() (uint64, error) {
	for {
		id, err := r.seq.Next()
		if err != nil {
			return 0, fmt.Errorf("next diary id: %w", err)
		}
		if id != 0 {
			return id, nil
		}
	}
}

func diaryKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", diaryPrefix, id))
}
