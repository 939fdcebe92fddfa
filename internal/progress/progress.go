package progress

import (
	"sync"

	"email-unsubscriber/internal/stats"

	"github.com/pterm/pterm"
)

// Bar manages a progress bar for tracking message processing.
type Bar struct {
	pb      *pterm.ProgressbarPrinter
	total   int
	mu      sync.Mutex
	enabled bool
}

// New creates a new progress bar if logLevel is "info".
func New(total int, logLevel string) *Bar {
	enabled := logLevel == "info" && total > 0

	bar := &Bar{
		total:   total,
		enabled: enabled,
	}

	if enabled {
		pb, _ := pterm.DefaultProgressbar.
			WithTotal(total).
			WithTitle("Processing messages").
			Start()

		bar.pb = pb

		pterm.Info.Printf("Messages to process: %d\n", total)
		pterm.Println()
	}

	return bar
}

// Step advances the bar after one message completes, showing its subject.
func (b *Bar) Step(subject string) {
	if b == nil || !b.enabled || b.pb == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.pb.Increment()

	if subject != "" {
		if r := []rune(subject); len(r) > 40 {
			subject = string(r[:37]) + "..."
		}
		b.pb.UpdateTitle("Processing: " + subject)
	}
}

// Finish stops the bar and prints the run summary with the busiest senders.
func (b *Bar) Finish(summary stats.Summary, top []stats.SenderCount) {
	if b == nil || !b.enabled || b.pb == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pb.Current < b.total {
		b.pb.Current = b.total
	}
	b.pb.Stop()

	pterm.Println()
	pterm.DefaultSection.Println("Run Summary")
	pterm.Info.Printf("Scanned: %d\n", summary.Scanned)
	pterm.Info.Printf("Unwanted: %d\n", summary.Unwanted)
	pterm.Info.Printf("Unsubscribed: %d\n", summary.Unsubscribed)
	pterm.Info.Printf("Attempted without confirmation: %d\n", summary.Attempted)
	pterm.Info.Printf("No link found: %d\n", summary.NoLink)
	pterm.Info.Printf("Dry run: %d\n", summary.DryRun)
	pterm.Info.Printf("Errors: %d\n", summary.ParseFailures+summary.LinkErrors+summary.DispatchFailed)

	if len(top) > 0 {
		pterm.Println()
		pterm.DefaultSection.Println("Busiest Senders")
		for i, sender := range top {
			pterm.Info.Printf("%d. %s (%d)\n", i+1, sender.Sender, sender.Count)
		}
	}

	pterm.Success.Println("Run complete")
}
