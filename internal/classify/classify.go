package classify

import (
	"strings"

	"email-unsubscriber/internal/models"
)

// Classifier decides whether a message is unwanted mail worth leaving.
// The baseline keyword rule can be swapped for something smarter behind
// this interface without touching the pipeline.
type Classifier interface {
	Classify(msg *models.Message) models.Classification
}

// unwantedKeyword marks effectively every mailing-list footer.
const unwantedKeyword = "unsubscribe"

// KeywordClassifier flags any message whose content mentions unsubscribing,
// case-insensitively, anywhere in the flattened body.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

func (c *KeywordClassifier) Classify(msg *models.Message) models.Classification {
	return models.Classification{
		IsUnwanted: strings.Contains(strings.ToLower(msg.Content), unwantedKeyword),
	}
}
