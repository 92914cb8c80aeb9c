package engine

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Veraticus/tally/internal/budget"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
)

// ImportResult counts what happened to each imported transaction.
type ImportResult struct {
	Added      int
	Duplicates int
	Invalid    int
}

// Import adds txns in order, skipping duplicates and invalid records, and
// saves once at the end. progress, when set, is called after each record.
// When ctx is canceled part way, the records added so far are still saved and
// the context error is returned alongside the partial result.
func (e *Engine) Import(ctx context.Context, txns []model.Transaction, progress func()) (ImportResult, error) {
	var (
		result    ImportResult
		cancelled error
	)

	for _, t := range txns {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}

		t = t.Normalize()
		if err := t.Validate(); err != nil {
			result.Invalid++
			slog.Warn("Skipping invalid transaction", "id", t.ID, "title", t.Title, "error", err)
		} else if stored, err := e.store.Add(t); errors.Is(err, common.ErrDuplicateID) {
			result.Duplicates++
			common.LogDebug(ctx, "Skipping already imported transaction", common.Fields{"id": t.ID})
		} else if err != nil {
			return result, err
		} else {
			e.ledger = budget.ApplyAdd(e.ledger, stored)
			result.Added++
		}

		if progress != nil {
			progress()
		}
	}

	if result.Added == 0 {
		return result, cancelled
	}

	common.LogInfo(ctx, "Imported transactions", common.Fields{
		"added":      result.Added,
		"duplicates": result.Duplicates,
		"invalid":    result.Invalid,
	})
	if err := e.persist(context.WithoutCancel(ctx), "import transactions", true); err != nil {
		return result, err
	}
	return result, cancelled
}
