package stats

import (
	"sort"
	"sync"

	"email-unsubscriber/internal/models"
)

// Summary aggregates the terminal outcomes of one run.
type Summary struct {
	Scanned        int `json:"scanned"`
	ParseFailures  int `json:"parseFailures"`
	Kept           int `json:"kept"`
	Unwanted       int `json:"unwanted"`
	Declined       int `json:"declined"`
	NoLink         int `json:"noLink"`
	LinkErrors     int `json:"linkErrors"`
	DryRun         int `json:"dryRun"`
	Unsubscribed   int `json:"unsubscribed"`
	Attempted      int `json:"attempted"`
	DispatchFailed int `json:"dispatchFailed"`
	PartFailures   int `json:"partFailures"`
}

// SenderCount pairs a sender with how many unwanted messages it produced.
type SenderCount struct {
	Sender string `json:"sender"`
	Count  int    `json:"count"`
}

// Collector accumulates run statistics. The pipeline is sequential, but the
// collector stays safe to share anyway.
type Collector struct {
	mu      sync.Mutex
	summary Summary
	senders map[string]int
}

func NewCollector() *Collector {
	return &Collector{senders: make(map[string]int)}
}

// Record folds one finished message into the summary.
func (c *Collector) Record(msg *models.Message, outcome models.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.summary.Scanned++
	c.summary.PartFailures += len(msg.PartErrors)

	if outcome == models.OutcomeKept {
		c.summary.Kept++
		return
	}

	c.summary.Unwanted++
	if sender := senderKey(msg); sender != "" {
		c.senders[sender]++
	}

	switch outcome {
	case models.OutcomeDeclined:
		c.summary.Declined++
	case models.OutcomeNoLink:
		c.summary.NoLink++
	case models.OutcomeLinkError:
		c.summary.LinkErrors++
	case models.OutcomeDryRun:
		c.summary.DryRun++
	case models.OutcomeUnsubscribed:
		c.summary.Unsubscribed++
	case models.OutcomeAttempted:
		c.summary.Attempted++
	case models.OutcomeDispatchFailed:
		c.summary.DispatchFailed++
	}
}

// senderKey groups messages by bare address, so a sender counts the same
// with or without a display name. The full header is the fallback.
func senderKey(msg *models.Message) string {
	if msg.FromAddress != "" {
		return msg.FromAddress
	}
	return msg.From
}

// RecordParseFailure counts a message that never made it into the pipeline.
func (c *Collector) RecordParseFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.summary.Scanned++
	c.summary.ParseFailures++
}

func (c *Collector) Snapshot() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary
}

// TopSenders returns the most frequent unwanted senders, busiest first, ties
// broken by name so the order is stable.
func (c *Collector) TopSenders(limit int) []SenderCount {
	c.mu.Lock()
	defer c.mu.Unlock()

	counts := make([]SenderCount, 0, len(c.senders))
	for sender, count := range c.senders {
		counts = append(counts, SenderCount{Sender: sender, Count: count})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Sender < counts[j].Sender
	})

	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}

	return counts
}
