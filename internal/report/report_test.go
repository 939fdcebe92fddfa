package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"email-unsubscriber/internal/models"
	"email-unsubscriber/internal/stats"
)

func TestWriteRoundTrip(t *testing.T) {
	msg := &models.Message{
		ID:          3,
		From:        "Shop Deals <deals@shop.example>",
		Subject:     "50% off everything",
		Fingerprint: "abc123",
	}

	r := &Report{
		StartedAt:  time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 8, 1, 10, 5, 0, 0, time.UTC),
		Mailbox:    "INBOX",
		Summary:    stats.Summary{Scanned: 1, Unwanted: 1, Unsubscribed: 1},
		Entries: []Entry{
			NewEntry(msg, models.OutcomeUnsubscribed, "https://shop.example/u/1"),
		},
	}

	path := filepath.Join(t.TempDir(), "report.json")
	if err := Write(path, r); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	var got Report
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}

	if got.Mailbox != "INBOX" {
		t.Errorf("Mailbox = %q, want INBOX", got.Mailbox)
	}
	if got.Summary.Unsubscribed != 1 {
		t.Errorf("Summary.Unsubscribed = %d, want 1", got.Summary.Unsubscribed)
	}
	if len(got.Entries) != 1 {
		t.Fatalf("Entries = %v", got.Entries)
	}

	entry := got.Entries[0]
	if entry.ID != 3 {
		t.Errorf("Entry.ID = %d, want 3", entry.ID)
	}
	if entry.Outcome != "unsubscribed" {
		t.Errorf("Entry.Outcome = %q, want unsubscribed", entry.Outcome)
	}
	if entry.Link != "https://shop.example/u/1" {
		t.Errorf("Entry.Link = %q", entry.Link)
	}
	if entry.Fingerprint != "abc123" {
		t.Errorf("Entry.Fingerprint = %q", entry.Fingerprint)
	}
}
