package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

func TestAddListShowDelete(t *testing.T) {
	env := newTestEnv(t, "sqlite")

	out, err := env.run(t, "", "add", "--id", "lunch-1", "--title", "Lunch", "--amount", "12.50",
		"--category", "food", "--date", "2024-05-06", "--note", "with Sam")
	require.NoError(t, err)
	assert.Contains(t, out, "Added expense Lunch -$12.50 (lunch-1)")

	out = env.mustRun(t, "list", "--day", "2024-05-06")
	assert.Contains(t, out, "Daily Report - 2024-05-06")
	assert.Contains(t, out, "Lunch")
	assert.Contains(t, out, "Food", "category is canonicalized")
	assert.Contains(t, out, "06/05/2024")

	out = env.mustRun(t, "show", "lunch")
	assert.Contains(t, out, "ID:       lunch-1")
	assert.Contains(t, out, "Note:     with Sam")

	out = env.mustRun(t, "delete", "lunch-1")
	assert.Contains(t, out, "Deleted transaction lunch-1")

	out = env.mustRun(t, "list")
	assert.Contains(t, out, "All transactions")
	assert.Contains(t, out, "No transactions found.")
}

func TestAddHelpListsCategories(t *testing.T) {
	env := newTestEnv(t, "sqlite")

	out := env.mustRun(t, "add", "--help")
	for _, category := range model.Categories() {
		assert.Contains(t, out, category)
	}
	assert.Contains(t, out, "Transportation, Bills and Fees")
}

func TestAddPromptsForMissingFields(t *testing.T) {
	env := newTestEnv(t, "sqlite")

	out, err := env.run(t, "Coffee\n3.20\n", "add", "--date", "2024-05-06", "--id", "coffee")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "Amount")
	assert.Contains(t, out, "Added expense Coffee -$3.20")

	out = env.mustRun(t, "show", "coffee")
	assert.Contains(t, out, "Extras", "default category")
}

func TestAddIncome(t *testing.T) {
	env := newTestEnv(t, "sqlite")

	out := env.mustRun(t, "add", "-t", "Salary", "-a", "2500", "-c", "Salary", "--type", "income", "-d", "2024-05-31")
	assert.Contains(t, out, "Added income Salary +$2500.00")

	out = env.mustRun(t, "budget", "status")
	assert.Contains(t, out, "Spent: $0.00", "income never counts as spending")
}

func TestAddRejectsInvalidInput(t *testing.T) {
	env := newTestEnv(t, "sqlite")

	tests := []struct {
		name string
		args []string
	}{
		{name: "not a number", args: []string{"--title", "x", "--amount", "abc"}},
		{name: "negative", args: []string{"--title", "x", "--amount", "-5"}},
		{name: "zero", args: []string{"--title", "x", "--amount", "0"}},
		{name: "bad date", args: []string{"--title", "x", "--amount", "5", "--date", "06/05/2024"}},
		{name: "bad type", args: []string{"--title", "x", "--amount", "5", "--type", "refund"}},
		{name: "blank title", args: []string{"--title", "  ", "--amount", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.run(t, "", append([]string{"add"}, tt.args...)...)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}

	out := env.mustRun(t, "list")
	assert.Contains(t, out, "No transactions found.")
}

func TestAddDuplicateID(t *testing.T) {
	env := newTestEnv(t, "sqlite")
	env.addLunch(t)

	_, err := env.run(t, "", "add", "--id", "lunch-1", "--title", "Again", "--amount", "1")
	assert.ErrorIs(t, err, common.ErrDuplicateID)
}

func TestEditChangesOnlyGivenFields(t *testing.T) {
	env := newTestEnv(t, "sqlite")
	env.addLunch(t)

	out := env.mustRun(t, "edit", "lunch-1", "--amount", "20", "--note", "with tip")
	assert.Contains(t, out, "Updated transaction lunch-1")

	out = env.mustRun(t, "show", "lunch-1")
	assert.Contains(t, out, "Title:    Lunch")
	assert.Contains(t, out, "-$20.00")
	assert.Contains(t, out, "with tip")

	out = env.mustRun(t, "budget", "status")
	assert.Contains(t, out, "Spent: $20.00")

	_, err := env.run(t, "", "edit", "lunch-1", "--amount", "-1")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = env.run(t, "", "edit", "missing", "--amount", "1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestIDPrefixes(t *testing.T) {
	env := newTestEnv(t, "sqlite")
	env.mustRun(t, "add", "--id", "abc-1", "--title", "One", "--amount", "1")
	env.mustRun(t, "add", "--id", "abc-2", "--title", "Two", "--amount", "2")

	_, err := env.run(t, "", "show", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matches 2 transactions")

	out := env.mustRun(t, "show", "abc-2")
	assert.Contains(t, out, "Two")

	out = env.mustRun(t, "delete", "zzz")
	assert.Contains(t, out, "nothing deleted")

	_, err = env.run(t, "", "delete", "abc")
	assert.Error(t, err, "an ambiguous prefix is not a miss")
}

func TestBudgetCommands(t *testing.T) {
	env := newTestEnv(t, "sqlite")

	out := env.mustRun(t, "budget")
	assert.Contains(t, out, "No budget set")

	out = env.mustRun(t, "budget", "set", "100")
	assert.Contains(t, out, "Budget set to $100.00")
	assert.Contains(t, out, "Remaining: $100.00")

	out = env.mustRun(t, "add", "--title", "Rent", "--amount", "150", "--category", "Bills and Fees")
	assert.Contains(t, out, "Over budget: $150.00 spent of $100.00")

	out = env.mustRun(t, "budget", "status")
	assert.Contains(t, out, "Spent:     $150.00")
	assert.Contains(t, out, "(over budget)")

	_, err := env.run(t, "", "budget", "set", "0")
	assert.ErrorIs(t, err, common.ErrValidation)

	out = env.mustRun(t, "budget", "reset")
	assert.Contains(t, out, "Budget reset")

	out = env.mustRun(t, "budget", "status")
	assert.Contains(t, out, "No budget set")
	assert.Contains(t, out, "Spent: $150.00")
}

func TestCurrencyCommand(t *testing.T) {
	env := newTestEnv(t, "sqlite")

	out := env.mustRun(t, "currency")
	assert.Contains(t, out, "Current currency: USD ($)")
	assert.Contains(t, out, "EUR")

	out = env.mustRun(t, "currency", "eur")
	assert.Contains(t, out, "Currency set to EUR (€)")

	env.addLunch(t)
	out = env.mustRun(t, "show", "lunch-1")
	assert.Contains(t, out, "-€12.50")

	out = env.mustRun(t, "currency", "XYZ")
	assert.Contains(t, out, "XYZ is not a known currency")
}

func TestClearAsksFirst(t *testing.T) {
	env := newTestEnv(t, "sqlite")
	env.addLunch(t)

	out, err := env.run(t, "n\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Delete all 1 transactions")
	assert.Contains(t, out, "Nothing was deleted.")

	out, err = env.run(t, "y\n", "clear", "--no-backup")
	require.NoError(t, err)
	assert.Contains(t, out, "All data cleared")

	out = env.mustRun(t, "list")
	assert.Contains(t, out, "No transactions found.")
}

func TestFileBackendKeepsData(t *testing.T) {
	env := newTestEnv(t, "file")
	env.addLunch(t)
	env.mustRun(t, "budget", "set", "50")

	out := env.mustRun(t, "budget", "status")
	assert.Contains(t, out, "Spent:     $12.50")

	out = env.mustRun(t, "clear", "--force")
	assert.Contains(t, out, "All data cleared")
	assert.NotContains(t, out, "Backup saved")
}
