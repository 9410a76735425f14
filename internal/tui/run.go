package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the browser until the user quits or ctx is cancelled.
func Run(ctx context.Context, cfg Config, opts ...tea.ProgramOption) error {
	if cfg.Engine == nil {
		return fmt.Errorf("engine is required")
	}
	if cfg.Refresh == nil {
		return fmt.Errorf("refresh function is required")
	}

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(New(ctx, cfg), opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("browser failed: %w", err)
	}

	if m, ok := final.(Model); ok && m.lastErr != nil {
		return m.lastErr
	}
	return nil
}
