package bank

import (
	"errors"
	"slices"
	"sync"
)

var ErrEmptyID = errors.New("record id is empty")
var ErrDuplicateID = errors.New("record with the same id already exists")

// Ordered collection of committed records. Insertion order is the display and export order.
type Repository struct {
	lock    sync.RWMutex
	records []Record
}

func NewRepository() *Repository {
	return &Repository{}
}

// Adds record to the end of the repository
func (r *Repository) Append(record Record) error {
	if record.ID == "" {
		return ErrEmptyID
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if r.indexOf(record.ID) >= 0 {
		return ErrDuplicateID
	}
	r.records = append(r.records, record)
	return nil
}

// Deletes record by id. Returns false if there was nothing to delete.
func (r *Repository) DeleteByID(id string) bool {
	r.lock.Lock()
	defer r.lock.Unlock()

	index := r.indexOf(id)
	if index < 0 {
		return false
	}
	r.records = slices.Delete(r.records, index, index+1)
	return true
}

func (r *Repository) Get(id string) (Record, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	index := r.indexOf(id)
	if index < 0 {
		return Record{}, false
	}
	return r.records[index], true
}

// Returns copy of all records in insertion order
func (r *Repository) All() []Record {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return slices.Clone(r.records)
}

func (r *Repository) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return len(r.records)
}

func (r *Repository) indexOf(id string) int {
	return slices.IndexFunc(r.records, func(record Record) bool {
		return record.ID == id
	})
}
