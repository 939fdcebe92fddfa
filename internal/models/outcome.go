package models

// Outcome represents the terminal state of one message in a run
type Outcome int

const (
	OutcomeKept Outcome = iota
	OutcomeParseFailed
	OutcomeDeclined
	OutcomeNoLink
	OutcomeLinkError
	OutcomeDryRun
	OutcomeUnsubscribed
	OutcomeAttempted
	OutcomeDispatchFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeKept:
		return "kept"
	case OutcomeParseFailed:
		return "parse_failed"
	case OutcomeDeclined:
		return "declined"
	case OutcomeNoLink:
		return "no_link"
	case OutcomeLinkError:
		return "link_error"
	case OutcomeDryRun:
		return "dry_run"
	case OutcomeUnsubscribed:
		return "unsubscribed"
	case OutcomeAttempted:
		return "attempted"
	case OutcomeDispatchFailed:
		return "dispatch_failed"
	}
	return "unknown"
}
