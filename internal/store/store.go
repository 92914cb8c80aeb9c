// Package store holds the in-memory transaction set and its date-range queries.
package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

// TransactionStore owns every transaction keyed by id.
// It is not safe for concurrent use.
type TransactionStore struct {
	entries map[string]entry
	nextSeq uint64
}

type entry struct {
	txn model.Transaction
	seq uint64 // insertion order, breaks ties between equal dates
}

// New creates an empty store.
func New() *TransactionStore {
	return &TransactionStore{entries: make(map[string]entry)}
}

// Add inserts t, assigning a fresh id when t.ID is blank.
// It returns the stored record, or ErrDuplicateID if the id is taken.
func (s *TransactionStore) Add(t model.Transaction) (model.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if _, exists := s.entries[t.ID]; exists {
		return model.Transaction{}, fmt.Errorf("%w: %s", common.ErrDuplicateID, t.ID)
	}

	s.entries[t.ID] = entry{txn: t, seq: s.nextSeq}
	s.nextSeq++
	return t, nil
}

// Update replaces the record stored under id. The replacement keeps id and
// its original insertion position.
func (s *TransactionStore) Update(id string, t model.Transaction) error {
	e, ok := s.entries[id]
	if !ok {
		return fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	t.ID = id
	e.txn = t
	s.entries[id] = e
	return nil
}

// Delete removes the record stored under id and reports whether one existed.
func (s *TransactionStore) Delete(id string) bool {
	if _, ok := s.entries[id]; !ok {
		return false
	}
	delete(s.entries, id)
	return true
}

// Get returns the record stored under id.
func (s *TransactionStore) Get(id string) (model.Transaction, error) {
	e, ok := s.entries[id]
	if !ok {
		return model.Transaction{}, fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	return e.txn, nil
}

// Len returns the number of stored transactions.
func (s *TransactionStore) Len() int {
	return len(s.entries)
}

// ByDate returns transactions dated d.
func (s *TransactionStore) ByDate(d time.Time) []model.Transaction {
	d = model.DateOf(d)
	return s.Filter(func(t model.Transaction) bool {
		return t.Date.Equal(d)
	})
}

// ByWeek returns transactions in the Monday-to-Sunday week containing d.
func (s *TransactionStore) ByWeek(d time.Time) []model.Transaction {
	monday, sunday := model.WeekBounds(d)
	return s.ByRange(monday, sunday)
}

// ByMonth returns transactions whose date falls in ym.
func (s *TransactionStore) ByMonth(ym model.YearMonth) []model.Transaction {
	return s.Filter(func(t model.Transaction) bool {
		return ym.Contains(t.Date)
	})
}

// ByRange returns transactions dated between from and to inclusive.
func (s *TransactionStore) ByRange(from, to time.Time) []model.Transaction {
	from, to = model.DateOf(from), model.DateOf(to)
	return s.Filter(func(t model.Transaction) bool {
		return !t.Date.Before(from) && !t.Date.After(to)
	})
}

// All returns a snapshot of every transaction.
func (s *TransactionStore) All() []model.Transaction {
	return s.Filter(func(model.Transaction) bool { return true })
}

// Filter returns the matching transactions sorted by date, then insertion order.
// The returned slice is a copy; changing it does not affect the store.
func (s *TransactionStore) Filter(keep func(model.Transaction) bool) []model.Transaction {
	matched := make([]entry, 0, len(s.entries))
	for _, e := range s.entries {
		if keep(e.txn) {
			matched = append(matched, e)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		di, dj := matched[i].txn.Date, matched[j].txn.Date
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return matched[i].seq < matched[j].seq
	})

	result := make([]model.Transaction, len(matched))
	for i, e := range matched {
		result[i] = e.txn
	}
	return result
}

// InsertionOrder returns every transaction in the order it was added.
// Persistence uses it so reloads keep tie-breaking stable.
func (s *TransactionStore) InsertionOrder() []model.Transaction {
	all := make([]entry, 0, len(s.entries))
	for _, e := range s.entries {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seq < all[j].seq })

	result := make([]model.Transaction, len(all))
	for i, e := range all {
		result[i] = e.txn
	}
	return result
}

// Replace swaps the store's contents for txns, added in order.
// On a duplicate id the store is left unchanged.
func (s *TransactionStore) Replace(txns []model.Transaction) error {
	fresh := New()
	for _, t := range txns {
		if _, err := fresh.Add(t); err != nil {
			return err
		}
	}
	*s = *fresh
	return nil
}

// Reset empties the store.
func (s *TransactionStore) Reset() {
	*s = *New()
}
