package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"email-unsubscriber/internal/models"
	"email-unsubscriber/internal/stats"
)

// Entry is the per-message record of a run.
type Entry struct {
	ID          uint32 `json:"id"`
	Fingerprint string `json:"fingerprint,omitempty"`
	From        string `json:"from,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Link        string `json:"link,omitempty"`
	Outcome     string `json:"outcome"`
	PartErrors  int    `json:"partErrors,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Report is the JSON account of one run.
type Report struct {
	StartedAt  time.Time           `json:"startedAt"`
	FinishedAt time.Time           `json:"finishedAt"`
	Mailbox    string              `json:"mailbox"`
	DryRun     bool                `json:"dryRun"`
	Summary    stats.Summary       `json:"summary"`
	TopSenders []stats.SenderCount `json:"topSenders,omitempty"`
	Entries    []Entry             `json:"entries"`
}

// NewEntry builds the record for a message that made it through parsing.
func NewEntry(msg *models.Message, outcome models.Outcome, link string) Entry {
	return Entry{
		ID:          msg.ID,
		Fingerprint: msg.Fingerprint,
		From:        msg.From,
		Subject:     msg.Subject,
		Link:        link,
		Outcome:     outcome.String(),
		PartErrors:  len(msg.PartErrors),
	}
}

// Write saves the report as indented JSON.
func Write(path string, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}
