package models

// Message represents a normalized parsed email message
type Message struct {
	ID                  uint32
	From                string
	FromAddress         string
	Subject             string
	Content             string
	ListUnsubscribe     string
	ListUnsubscribePost string
	Fingerprint         string
	TraceID             string
	PartErrors          []error
}
