package mailparse

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"regexp"

	"email-unsubscriber/internal/models"

	"github.com/emersion/go-message"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// Parse turns one raw message into the normalized model the pipeline works
// on. Header decoding failures are fatal for the message; body part failures
// are collected on the message instead of aborting it.
func Parse(id uint32, raw []byte) (*models.Message, error) {
	entity, err := message.Read(bytes.NewReader(raw))
	switch {
	case err == nil:
	case message.IsUnknownCharset(err) || message.IsUnknownEncoding(err):
		// Headers are still usable; the body is handled below like any
		// other undecodable part.
	default:
		return nil, fmt.Errorf("read message %d: %w", id, err)
	}

	subject, decodeErr := DecodeHeader(entity.Header.Get("Subject"))
	if decodeErr != nil {
		return nil, fmt.Errorf("subject of message %d: %w", id, decodeErr)
	}

	from, decodeErr := DecodeHeader(entity.Header.Get("From"))
	if decodeErr != nil {
		return nil, fmt.Errorf("sender of message %d: %w", id, decodeErr)
	}

	msg := &models.Message{
		ID:                  id,
		From:                from,
		FromAddress:         extractEmailAddress(from),
		Subject:             subject,
		ListUnsubscribe:     entity.Header.Get("List-Unsubscribe"),
		ListUnsubscribePost: entity.Header.Get("List-Unsubscribe-Post"),
		Fingerprint:         fingerprint(raw),
		TraceID:             uuid.New().String(),
	}

	if err != nil && entity.MultipartReader() == nil {
		msg.PartErrors = []error{fmt.Errorf("undecodable body: %w", err)}
		return msg, nil
	}

	msg.Content, msg.PartErrors = ExtractContent(entity)
	return msg, nil
}

// fingerprint is a stable short identifier for a raw message, so runs can be
// correlated even after the server renumbers the mailbox.
func fingerprint(raw []byte) string {
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:12])
}

// Simple regex to extract the bare address from a "From" header, which may
// contain a display name
func extractEmailAddress(fromHeader string) string {
	re := regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	return re.FindString(fromHeader)
}
