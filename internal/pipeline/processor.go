package pipeline

import (
	"fmt"
	"time"

	"email-unsubscriber/internal/logging"
	"email-unsubscriber/internal/mailparse"
	"email-unsubscriber/internal/mailstore"
	"email-unsubscriber/internal/models"
	"email-unsubscriber/internal/progress"
	"email-unsubscriber/internal/report"
	"email-unsubscriber/internal/stats"
	"email-unsubscriber/internal/unsubscribe"
)

// topSenderCount bounds the sender ranking printed after a run.
const topSenderCount = 5

type Processor struct {
	store   mailstore.Store
	service *unsubscribe.Service
	config  *models.Config
}

// NewProcessor creates a new Processor instance with the provided mail store, unsubscribe service and configuration
func NewProcessor(store mailstore.Store, service *unsubscribe.Service, cfg *models.Config) *Processor {
	return &Processor{
		store:   store,
		service: service,
		config:  cfg,
	}
}

// Run orchestrates the complete batch workflow:
// list recent → fetch → parse → classify and unsubscribe → tally
//
// A message that fails to parse is recorded and skipped; a store error ends
// the batch, since the remaining messages would fail the same way.
func (p *Processor) Run() (*report.Report, error) {
	started := time.Now()

	ids, err := p.store.ListRecentMessageIDs(p.config.Email.Limit)
	if err != nil {
		return nil, fmt.Errorf("list recent messages: %w", err)
	}

	logging.Log.Infof("Processing %d message(s) from %s", len(ids), p.config.Email.MailBox)

	bar := progress.New(len(ids), p.config.LogLevel)
	collector := stats.NewCollector()
	entries := make([]report.Entry, 0, len(ids))

	for _, id := range ids {
		raw, err := p.store.FetchRawMessage(id)
		if err != nil {
			return nil, fmt.Errorf("fetch message %d: %w", id, err)
		}

		msg, err := mailparse.Parse(id, raw)
		if err != nil {
			logging.Log.WithField("trace_id", "unknown").Errorf("Error parsing message %d: %v", id, err)
			collector.RecordParseFailure()
			entries = append(entries, report.Entry{
				ID:      id,
				Outcome: models.OutcomeParseFailed.String(),
				Error:   err.Error(),
			})
			bar.Step("")
			continue
		}

		locallog := logging.Log.WithField("trace_id", msg.TraceID)
		for _, perr := range msg.PartErrors {
			locallog.Warnf("Skipping undecodable part in message %d: %v", id, perr)
		}

		outcome, link := p.service.HandleMessage(msg)
		locallog.Infof("Message %d from %s: %s", id, msg.From, outcome)

		collector.Record(msg, outcome)
		entries = append(entries, report.NewEntry(msg, outcome, link))
		bar.Step(msg.Subject)
	}

	summary := collector.Snapshot()
	top := collector.TopSenders(topSenderCount)
	bar.Finish(summary, top)

	return &report.Report{
		StartedAt:  started,
		FinishedAt: time.Now(),
		Mailbox:    p.config.Email.MailBox,
		DryRun:     p.config.DryRun,
		Summary:    summary,
		TopSenders: top,
		Entries:    entries,
	}, nil
}
