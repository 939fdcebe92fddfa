package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"email-unsubscriber/internal/classify"
	"email-unsubscriber/internal/models"
	"email-unsubscriber/internal/unsubscribe"
)

type MockAgent struct {
	Result models.AgentResult
	Calls  []string
}

func (m *MockAgent) AttemptUnsubscribe(link, traceID string) (models.AgentResult, error) {
	m.Calls = append(m.Calls, link)
	return m.Result, nil
}

type fakeStore struct {
	ids      []uint32
	messages map[uint32][]byte
	listErr  error
	fetchErr map[uint32]error
}

func (f *fakeStore) ListRecentMessageIDs(limit int) ([]uint32, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.ids, nil
}

func (f *fakeStore) FetchRawMessage(id uint32) ([]byte, error) {
	if err, ok := f.fetchErr[id]; ok {
		return nil, err
	}
	raw, ok := f.messages[id]
	if !ok {
		return nil, fmt.Errorf("no message %d", id)
	}
	return raw, nil
}

func (f *fakeStore) Close() error { return nil }

func rawMessage(from, subject, contentType, body string) []byte {
	return []byte("From: " + from + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: " + contentType + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

func newProcessor(t *testing.T, store *fakeStore, cfg *models.Config, mockAgent *MockAgent) *Processor {
	t.Helper()
	svc, err := unsubscribe.NewService(cfg, unsubscribe.Options{
		Classifier: classify.NewKeywordClassifier(),
		Agent:      mockAgent,
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return NewProcessor(store, svc, cfg)
}

func TestRun_BatchSurvivesOneBadMessage(t *testing.T) {
	store := &fakeStore{
		ids: []uint32{1, 2, 3, 4},
		messages: map[uint32][]byte{
			1: rawMessage("News <news@shop.example>", "Weekly deals", "text/html; charset=utf-8",
				`<p>Deals!</p><a href="http://shop.example/unsub?u=1">Unsubscribe</a>`),
			// Unknown charset in the subject makes this one unparseable.
			2: rawMessage("noreply@broken.example", "=?x-unknown-cs?Q?hello?=", "text/plain; charset=utf-8",
				"does not matter"),
			3: rawMessage("Alice <alice@example.com>", "Lunch?", "text/plain; charset=utf-8",
				"Are you free at noon?"),
			// Unknown charset in the body only: the message still goes
			// through, with the bad part contributing nothing.
			4: rawMessage("odd@example.com", "Odd encoding", "text/plain; charset=x-mystery",
				"whatever"),
		},
	}

	cfg := &models.Config{Email: models.EmailConfig{MailBox: "INBOX", Limit: 10}}
	mockAgent := &MockAgent{Result: models.ResultSuccess}

	rep, err := newProcessor(t, store, cfg, mockAgent).Run()
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(rep.Entries) != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(rep.Entries))
	}
	if rep.Entries[0].Outcome != models.OutcomeUnsubscribed.String() {
		t.Errorf("Expected first message unsubscribed, got %s", rep.Entries[0].Outcome)
	}
	if rep.Entries[1].Outcome != models.OutcomeParseFailed.String() || rep.Entries[1].Error == "" {
		t.Errorf("Expected second message to fail parsing, got %+v", rep.Entries[1])
	}
	if rep.Entries[2].Outcome != models.OutcomeKept.String() {
		t.Errorf("Expected third message kept, got %s", rep.Entries[2].Outcome)
	}
	if rep.Entries[3].Outcome != models.OutcomeKept.String() || rep.Entries[3].PartErrors != 1 {
		t.Errorf("Expected fourth message kept with one part error, got %+v", rep.Entries[3])
	}

	if rep.Summary.Scanned != 4 || rep.Summary.ParseFailures != 1 ||
		rep.Summary.Unsubscribed != 1 || rep.Summary.Kept != 2 || rep.Summary.PartFailures != 1 {
		t.Errorf("Unexpected summary: %+v", rep.Summary)
	}

	if len(mockAgent.Calls) != 1 || mockAgent.Calls[0] != "http://shop.example/unsub?u=1" {
		t.Errorf("Expected one agent call for the newsletter, got %v", mockAgent.Calls)
	}
}

func TestRun_ListErrorEndsBatch(t *testing.T) {
	store := &fakeStore{listErr: errors.New("connection reset")}
	cfg := &models.Config{Email: models.EmailConfig{MailBox: "INBOX", Limit: 10}}

	rep, err := newProcessor(t, store, cfg, &MockAgent{}).Run()
	if err == nil {
		t.Fatal("Expected error when listing fails")
	}
	if rep != nil {
		t.Error("Expected no report on a failed batch")
	}
	if !strings.Contains(err.Error(), "list recent messages") {
		t.Errorf("Expected wrapped list error, got %v", err)
	}
}

func TestRun_FetchErrorEndsBatch(t *testing.T) {
	store := &fakeStore{
		ids: []uint32{1, 2},
		messages: map[uint32][]byte{
			1: rawMessage("Alice <alice@example.com>", "Hi", "text/plain; charset=utf-8", "hello"),
		},
		fetchErr: map[uint32]error{2: errors.New("connection reset")},
	}
	cfg := &models.Config{Email: models.EmailConfig{MailBox: "INBOX", Limit: 10}}

	_, err := newProcessor(t, store, cfg, &MockAgent{}).Run()
	if err == nil {
		t.Fatal("Expected error when a fetch fails")
	}
	if !strings.Contains(err.Error(), "fetch message 2") {
		t.Errorf("Expected wrapped fetch error, got %v", err)
	}
}

func TestRun_ReportMetadata(t *testing.T) {
	store := &fakeStore{
		ids: []uint32{7},
		messages: map[uint32][]byte{
			7: rawMessage("News <news@shop.example>", "Deals", "text/html; charset=utf-8",
				`<a href="http://shop.example/unsub">unsubscribe</a>`),
		},
	}
	cfg := &models.Config{
		Email:  models.EmailConfig{MailBox: "Archive", Limit: 10},
		DryRun: true,
	}

	rep, err := newProcessor(t, store, cfg, &MockAgent{}).Run()
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if rep.Mailbox != "Archive" {
		t.Errorf("Expected mailbox Archive, got %s", rep.Mailbox)
	}
	if !rep.DryRun {
		t.Error("Expected dry run flag to carry into the report")
	}
	if rep.FinishedAt.Before(rep.StartedAt) {
		t.Error("Expected FinishedAt to be at or after StartedAt")
	}
	if rep.Summary.DryRun != 1 {
		t.Errorf("Expected one dry run outcome, got %+v", rep.Summary)
	}
	if len(rep.TopSenders) != 1 || rep.TopSenders[0].Sender != "news@shop.example" {
		t.Errorf("Expected the newsletter sender in the ranking, got %v", rep.TopSenders)
	}
}
