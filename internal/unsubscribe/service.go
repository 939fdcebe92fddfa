package unsubscribe

import (
	"fmt"

	"email-unsubscriber/internal/agent"
	"email-unsubscriber/internal/classify"
	"email-unsubscriber/internal/links"
	"email-unsubscriber/internal/logging"
	"email-unsubscriber/internal/models"
)

// ConfirmFunc asks the user whether to act on a message. Returning false
// leaves the subscription alone.
type ConfirmFunc func(msg *models.Message) bool

// Options carries the collaborators HandleMessage dispatches to. Classifier
// and Agent are required; the rest are optional capabilities.
type Options struct {
	Classifier classify.Classifier
	Agent      agent.Agent
	OneClick   *agent.OneClickClient
	Mailer     *agent.MailtoSender
	Confirm    ConfirmFunc
}

// Service carries one message from classification through link extraction to
// the unsubscribe dispatch.
type Service struct {
	config *models.Config
	opts   Options
}

// NewService creates a new Service with the provided configuration and collaborators.
func NewService(cfg *models.Config, opts Options) (*Service, error) {
	if opts.Classifier == nil {
		return nil, fmt.Errorf("classifier is required")
	}
	if opts.Agent == nil {
		return nil, fmt.Errorf("agent is required")
	}
	return &Service{config: cfg, opts: opts}, nil
}

// HandleMessage walks one parsed message to a terminal outcome and returns
// it with the link the dispatch acted on, if any. Nothing in here aborts a
// batch: every failure lands in the outcome and the logs.
func (s *Service) HandleMessage(msg *models.Message) (models.Outcome, string) {
	locallog := logging.Log.WithField("trace_id", msg.TraceID)

	if !s.opts.Classifier.Classify(msg).IsUnwanted {
		locallog.Infof("Message from %s is wanted, skip ...", msg.From)
		return models.OutcomeKept, ""
	}

	if s.config.RequireUserConfirmation && s.opts.Confirm != nil && !s.opts.Confirm(msg) {
		locallog.Info("User declined, leaving subscription alone")
		return models.OutcomeDeclined, ""
	}

	link, err := links.ExtractUnsubscribeLink(msg.Content)
	if err != nil {
		locallog.WithError(err).Warn("Unsubscribe link extraction failed, skipping message")
		return models.OutcomeLinkError, ""
	}

	var mailto string
	var oneClick bool
	if link == "" && s.config.UseListUnsubscribe {
		link, mailto, oneClick = s.headerFallback(msg)
	}

	target := link
	if target == "" {
		target = mailto
	}
	if target == "" {
		locallog.Info("No unsubscribe link found in message")
		return models.OutcomeNoLink, ""
	}

	if s.config.DryRun {
		locallog.Infof("Dry run: would unsubscribe via %s", target)
		return models.OutcomeDryRun, target
	}

	return s.dispatch(msg, link, mailto, oneClick), target
}

// headerFallback consults the List-Unsubscribe header when the body offers
// no candidate.
func (s *Service) headerFallback(msg *models.Message) (link, mailto string, oneClick bool) {
	for _, method := range links.ParseListUnsubscribe(msg.ListUnsubscribe) {
		switch method.Type {
		case "http":
			if link == "" {
				link = method.URL
			}
		case "mailto":
			if mailto == "" {
				mailto = method.URL
			}
		}
	}

	if link != "" || mailto != "" {
		logging.Log.WithField("trace_id", msg.TraceID).Info("Falling back to List-Unsubscribe header")
	}

	oneClick = link != "" && links.SupportsOneClick(msg.ListUnsubscribePost)
	return link, mailto, oneClick
}

func (s *Service) dispatch(msg *models.Message, link, mailto string, oneClick bool) models.Outcome {
	locallog := logging.Log.WithField("trace_id", msg.TraceID)

	switch {
	case oneClick && s.opts.OneClick != nil:
		if err := s.opts.OneClick.Post(link); err != nil {
			locallog.WithError(err).Error("One-click unsubscribe failed")
			return models.OutcomeDispatchFailed
		}
		locallog.Info("One-click unsubscribe accepted")
		return models.OutcomeUnsubscribed

	case link != "":
		result, err := s.opts.Agent.AttemptUnsubscribe(link, msg.TraceID)
		if err != nil {
			locallog.WithError(err).Error("Browser agent error")
			return models.OutcomeDispatchFailed
		}
		switch result {
		case models.ResultSuccess:
			return models.OutcomeUnsubscribed
		case models.ResultUncertain:
			return models.OutcomeAttempted
		}
		return models.OutcomeDispatchFailed

	case s.opts.Mailer != nil:
		if err := s.opts.Mailer.Send(mailto); err != nil {
			locallog.WithError(err).Error("Mailto unsubscribe failed")
			return models.OutcomeDispatchFailed
		}
		locallog.Info("Unsubscribe request mailed")
		return models.OutcomeUnsubscribed
	}

	locallog.Info("No way to dispatch the unsubscribe request")
	return models.OutcomeNoLink
}
