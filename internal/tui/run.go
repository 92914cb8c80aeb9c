package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/tally/internal/model"
)

// Run starts the browser on the current month and blocks until the user quits
// or ctx is canceled.
func Run(ctx context.Context, source Source) error {
	if source == nil {
		return fmt.Errorf("source is required")
	}

	p := tea.NewProgram(New(source, model.Today()), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("browser error: %w", err)
	}
	return nil
}
