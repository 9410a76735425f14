package cli

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/Veraticus/larder/internal/model"
	"github.com/schollz/progressbar/v3"
)

// MatchProgress renders match job progress as a terminal progress bar.
// Update is safe to call from the job goroutine.
type MatchProgress struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
	total  int
	mu     sync.Mutex
}

// NewMatchProgress creates a progress reporter writing to w.
func NewMatchProgress(w io.Writer) *MatchProgress {
	return &MatchProgress{writer: w}
}

// Update moves the bar to p. A change in total starts a new bar.
func (m *MatchProgress) Update(p model.Progress) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.bar == nil || p.Total != m.total {
		m.total = p.Total
		m.bar = m.newBar(p.Total)
	}
	if err := m.bar.Set(p.Done); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

func (m *MatchProgress) newBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(m.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Matching recipes...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(m.writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
