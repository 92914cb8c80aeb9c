package store

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

func txn(id string, date time.Time, amount string) model.Transaction {
	return model.Transaction{
		ID:       id,
		Date:     date,
		Title:    "Item " + id,
		Category: model.CategoryFood,
		Amount:   decimal.RequireFromString(amount),
	}
}

func ids(txns []model.Transaction) []string {
	out := make([]string, len(txns))
	for i, t := range txns {
		out[i] = t.ID
	}
	return out
}

func TestTransactionStore_Add(t *testing.T) {
	s := New()

	stored, err := s.Add(txn("", model.NewDate(2024, 3, 5), "4.50"))
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID, "blank id is assigned")

	got, err := s.Get(stored.ID)
	require.NoError(t, err)
	assert.True(t, got.Equal(stored))

	_, err = s.Add(txn(stored.ID, model.NewDate(2024, 3, 6), "1"))
	assert.ErrorIs(t, err, common.ErrDuplicateID)
	assert.Equal(t, 1, s.Len(), "duplicate is not inserted")
}

func TestTransactionStore_UpdateAndDelete(t *testing.T) {
	s := New()
	_, err := s.Add(txn("a", model.NewDate(2024, 3, 5), "10"))
	require.NoError(t, err)

	replacement := txn("ignored", model.NewDate(2024, 3, 7), "12.25")
	replacement.Title = "Lunch"
	require.NoError(t, s.Update("a", replacement))

	got, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)
	assert.Equal(t, "Lunch", got.Title)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("12.25")))

	assert.ErrorIs(t, s.Update("missing", replacement), common.ErrNotFound)

	assert.False(t, s.Delete("missing"))
	assert.True(t, s.Delete("a"))
	_, err = s.Get("a")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestTransactionStore_SortedQueries(t *testing.T) {
	s := New()
	for _, tx := range []model.Transaction{
		txn("late", model.NewDate(2024, 3, 9), "1"),
		txn("first-tie", model.NewDate(2024, 3, 5), "1"),
		txn("early", model.NewDate(2024, 3, 1), "1"),
		txn("second-tie", model.NewDate(2024, 3, 5), "1"),
	} {
		_, err := s.Add(tx)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"early", "first-tie", "second-tie", "late"}, ids(s.All()))
	assert.Equal(t, []string{"first-tie", "second-tie"}, ids(s.ByDate(model.NewDate(2024, 3, 5))))

	// An update keeps the original insertion position for tie-breaking.
	require.NoError(t, s.Update("first-tie", txn("", model.NewDate(2024, 3, 5), "2")))
	assert.Equal(t, []string{"first-tie", "second-tie"}, ids(s.ByDate(model.NewDate(2024, 3, 5))))
}

func TestTransactionStore_ByWeek(t *testing.T) {
	s := New()
	// Sunday before, Monday..Sunday of the week of 2024-03-06, Monday after.
	for i, d := range []time.Time{
		model.NewDate(2024, 3, 3),
		model.NewDate(2024, 3, 4),
		model.NewDate(2024, 3, 6),
		model.NewDate(2024, 3, 10),
		model.NewDate(2024, 3, 11),
	} {
		_, err := s.Add(txn(string(rune('a'+i)), d, "1"))
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"b", "c", "d"}, ids(s.ByWeek(model.NewDate(2024, 3, 6))))
	assert.Equal(t, []string{"b", "c", "d"}, ids(s.ByWeek(model.NewDate(2024, 3, 10))))
	assert.Equal(t, []string{"a"}, ids(s.ByWeek(model.NewDate(2024, 3, 3))))
}

func TestTransactionStore_ByWeekProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := New()
	base := model.NewDate(2023, 12, 1)
	for i := 0; i < 200; i++ {
		_, err := s.Add(txn("", base.AddDate(0, 0, rng.Intn(120)), "1"))
		require.NoError(t, err)
	}

	for i := 0; i < 50; i++ {
		d := base.AddDate(0, 0, rng.Intn(120))
		monday, _ := model.WeekBounds(d)
		got := s.ByWeek(d)

		expected := 0
		for _, tx := range s.All() {
			if !tx.Date.Before(monday) && !tx.Date.After(monday.AddDate(0, 0, 6)) {
				expected++
			}
		}
		assert.Len(t, got, expected)
		for _, tx := range got {
			assert.Equal(t, time.Monday, monday.Weekday())
			assert.False(t, tx.Date.Before(monday))
			assert.False(t, tx.Date.After(monday.AddDate(0, 0, 6)))
		}
	}
}

func TestTransactionStore_ByMonth(t *testing.T) {
	s := New()
	for i, d := range []time.Time{
		model.NewDate(2024, 2, 29),
		model.NewDate(2024, 3, 1),
		model.NewDate(2024, 3, 31),
		model.NewDate(2023, 3, 15),
	} {
		_, err := s.Add(txn(string(rune('a'+i)), d, "1"))
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"b", "c"}, ids(s.ByMonth(model.YearMonth{Year: 2024, Month: time.March})))
	assert.Empty(t, s.ByMonth(model.YearMonth{Year: 2024, Month: time.April}))
}

func TestTransactionStore_SnapshotIsolation(t *testing.T) {
	s := New()
	_, err := s.Add(txn("a", model.NewDate(2024, 3, 5), "1"))
	require.NoError(t, err)

	snapshot := s.All()
	snapshot[0].Title = "mutated"
	_ = append(snapshot, txn("b", model.NewDate(2024, 3, 5), "1"))

	got, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "Item a", got.Title)
	assert.Equal(t, 1, s.Len())

	// Queries never consume the store.
	_ = s.ByDate(model.NewDate(2024, 3, 5))
	assert.Equal(t, 1, s.Len())
}

func TestTransactionStore_ReplaceAndReset(t *testing.T) {
	s := New()
	_, err := s.Add(txn("old", model.NewDate(2024, 1, 1), "1"))
	require.NoError(t, err)

	err = s.Replace([]model.Transaction{
		txn("x", model.NewDate(2024, 1, 1), "1"),
		txn("x", model.NewDate(2024, 1, 2), "1"),
	})
	assert.ErrorIs(t, err, common.ErrDuplicateID)
	assert.Equal(t, []string{"old"}, ids(s.All()), "failed replace leaves store untouched")

	require.NoError(t, s.Replace([]model.Transaction{
		txn("y", model.NewDate(2024, 1, 1), "1"),
		txn("x", model.NewDate(2024, 1, 1), "1"),
	}))
	assert.Equal(t, []string{"y", "x"}, ids(s.InsertionOrder()))

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.All())
}
