// Package progress wraps terminal progress reporting for long walks.
package progress

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// Bar tracks progress over a known number of steps.
type Bar struct {
	bar *progressbar.ProgressBar
}

// NewBar creates a progress bar with the given label and total step count.
func NewBar(label string, total int) *Bar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(label),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &Bar{bar: bar}
}

// NewSpinner creates a spinner for operations with unknown step count.
func NewSpinner(label string) *Bar {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	return &Bar{bar: bar}
}

// Describe updates the label, e.g. with the snapshot date being processed.
func (b *Bar) Describe(label string) {
	b.bar.Describe(label)
}

// Tick advances the bar by one step. Safe for concurrent use.
func (b *Bar) Tick() {
	b.bar.Add(1)
}

// Finish completes and clears the bar.
func (b *Bar) Finish() {
	b.bar.Finish()
	b.bar.Clear()
}
