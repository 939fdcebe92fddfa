package agent

import "email-unsubscriber/internal/models"

// Agent completes an unsubscribe flow at the given URL on behalf of the
// user. Implementations own their timeouts; a returned error means the
// attempt failed without a usable result.
type Agent interface {
	AttemptUnsubscribe(link, traceID string) (models.AgentResult, error)
}
